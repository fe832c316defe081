package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client delivers JSON payloads to a webhook endpoint with retries
type Client struct {
	httpClient  *http.Client
	config      *Config
	retryConfig *RetryConfig
	log         *slog.Logger
}

// NewClient creates a new webhook client
func NewClient(config *Config, retryConfig *RetryConfig, log *slog.Logger) *Client {
	if config.Method == "" {
		config.Method = http.MethodPost
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if retryConfig == nil {
		retryConfig = DefaultRetryConfig()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second, // per request
		},
		config:      config,
		retryConfig: retryConfig,
		log:         log.With("webhook", config.URL),
	}
}

// Send marshals payload and delivers it, retrying retryable failures until
// the retries or the overall timeout run out
func (c *Client) Send(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryConfig.backoff(attempt)
			c.log.Debug("retrying webhook", "attempt", attempt, "max_retries", c.retryConfig.MaxRetries, "delay", delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("webhook timeout after %d attempts: %w", attempt, ctx.Err())
			}
		}

		statusCode, err := c.sendRequest(ctx, body)
		if err == nil && statusCode >= 200 && statusCode < 300 {
			c.log.Debug("webhook delivered", "status", statusCode)
			return nil
		}

		if err != nil {
			lastErr = fmt.Errorf("attempt %d failed: %w", attempt+1, err)
		} else {
			lastErr = fmt.Errorf("attempt %d failed with status %d", attempt+1, statusCode)
		}

		if statusCode > 0 && !isRetryableStatus(statusCode) {
			c.log.Debug("non-retryable webhook status, giving up", "status", statusCode)
			return lastErr
		}
	}

	return fmt.Errorf("webhook failed after %d attempts: %w", c.retryConfig.MaxRetries+1, lastErr)
}

func (c *Client) sendRequest(ctx context.Context, payload []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, c.config.Method, c.config.URL, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}

	switch c.config.AuthType {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	case AuthAPIKey:
		req.Header.Set("X-API-Key", c.config.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
