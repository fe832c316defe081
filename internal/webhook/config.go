package webhook

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zinc-sig/specter/internal/settings"
)

// Authentication types
const (
	AuthNone   = "none"
	AuthBearer = "bearer"
	AuthAPIKey = "api-key"
)

// Config holds webhook endpoint configuration
type Config struct {
	URL       string
	Method    string            // default: POST
	Headers   map[string]string // custom headers
	Timeout   time.Duration     // overall budget including retries
	AuthType  string
	AuthToken string
}

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig returns default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// FromSettings converts a merged settings map into webhook configuration.
// It returns nil configs when no url is set.
func FromSettings(m map[string]any) (*Config, *RetryConfig, error) {
	url, ok := settings.String(m, "url")
	if !ok {
		return nil, nil, nil
	}

	cfg := &Config{
		URL:       url,
		Method:    strings.ToUpper(settings.StringOr(m, "method", http.MethodPost)),
		Timeout:   30 * time.Second,
		AuthType:  settings.StringOr(m, "auth_type", AuthNone),
		AuthToken: settings.StringOr(m, "auth_token", ""),
	}
	switch cfg.AuthType {
	case AuthNone, AuthBearer, AuthAPIKey:
	default:
		return nil, nil, fmt.Errorf("unsupported webhook auth type: %s", cfg.AuthType)
	}

	if headers, ok := m["headers"].(map[string]any); ok {
		cfg.Headers = make(map[string]string, len(headers))
		for k, v := range headers {
			cfg.Headers[k] = fmt.Sprint(v)
		}
	}

	if s, ok := settings.String(m, "timeout"); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid webhook timeout duration: %w", err)
		}
		cfg.Timeout = d
	}

	retry := DefaultRetryConfig()
	retry.MaxRetries = settings.Int(m, "retries", retry.MaxRetries)
	if s, ok := settings.String(m, "retry_delay"); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid webhook retry delay: %w", err)
		}
		retry.InitialDelay = d
	}

	return cfg, retry, nil
}
