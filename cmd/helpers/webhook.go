package helpers

import (
	"fmt"
	"log/slog"

	"github.com/zinc-sig/specter/cmd/config"
	"github.com/zinc-sig/specter/internal/report"
	"github.com/zinc-sig/specter/internal/settings"
	"github.com/zinc-sig/specter/internal/webhook"
)

// WebhookEnvPrefix is the environment prefix for webhook settings
const WebhookEnvPrefix = "SPECTER_WEBHOOK"

// BuildWebhookConfig builds webhook settings from all sources.
// Precedence: env < file < json < kv < direct flags
func BuildWebhookConfig(cfg *config.WebhookConfig) (map[string]any, error) {
	conf, err := settings.Build(WebhookEnvPrefix, cfg.Config, cfg.ConfigKV, cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook config: %w", err)
	}

	direct := map[string]string{
		"url":         cfg.URL,
		"method":      cfg.Method,
		"auth_type":   cfg.AuthType,
		"auth_token":  cfg.AuthToken,
		"timeout":     cfg.Timeout,
		"retry_delay": cfg.RetryDelay,
	}
	for k, v := range direct {
		if v != "" {
			conf[k] = v
		}
	}
	if cfg.Retries >= 0 {
		conf["retries"] = cfg.Retries
	}

	return conf, nil
}

// SetupWebhookSink returns a sink for the configured webhook, or nil when
// no webhook url is configured
func SetupWebhookSink(cfg *config.WebhookConfig, log *slog.Logger) (report.Sink, error) {
	conf, err := BuildWebhookConfig(cfg)
	if err != nil {
		return nil, err
	}

	webhookConfig, retryConfig, err := webhook.FromSettings(conf)
	if err != nil {
		return nil, err
	}
	if webhookConfig == nil {
		return nil, nil
	}

	return &report.WebhookSink{Client: webhook.NewClient(webhookConfig, retryConfig, log)}, nil
}
