package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zinc-sig/specter/internal/output"
)

// recorder is a webhook endpoint that answers with a scripted sequence of
// status codes, repeating the last one, and keeps every request it saw.
type recorder struct {
	*httptest.Server

	mu       sync.Mutex
	statuses []int
	requests []recordedRequest
}

type recordedRequest struct {
	method string
	header http.Header
	body   []byte
}

func newRecorder(t *testing.T, statuses ...int) *recorder {
	t.Helper()
	rec := &recorder{statuses: statuses}
	rec.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		rec.mu.Lock()
		n := len(rec.requests)
		rec.requests = append(rec.requests, recordedRequest{method: r.Method, header: r.Header.Clone(), body: body})
		status := http.StatusOK
		if len(rec.statuses) > 0 {
			status = rec.statuses[min(n, len(rec.statuses)-1)]
		}
		rec.mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(rec.Close)
	return rec
}

func (r *recorder) calls() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedRequest(nil), r.requests...)
}

func fastRetries(n int) *RetryConfig {
	return &RetryConfig{MaxRetries: n, InitialDelay: 5 * time.Millisecond, MaxDelay: 20 * time.Millisecond, Multiplier: 2}
}

func TestNewClientFillsDefaults(t *testing.T) {
	cfg := &Config{URL: "https://example.com/hook"}
	client := NewClient(cfg, nil, nil)

	if cfg.Method != http.MethodPost || cfg.Timeout != 30*time.Second {
		t.Errorf("defaults = %s %v, want POST 30s", cfg.Method, cfg.Timeout)
	}
	if client.retryConfig.MaxRetries != DefaultRetryConfig().MaxRetries {
		t.Errorf("MaxRetries = %d, want the default", client.retryConfig.MaxRetries)
	}
	if client.log == nil {
		t.Error("a nil logger should be replaced")
	}

	kept := &Config{URL: "https://example.com/hook", Method: http.MethodPut, Timeout: time.Second}
	NewClient(kept, fastRetries(0), nil)
	if kept.Method != http.MethodPut || kept.Timeout != time.Second {
		t.Errorf("explicit values overwritten: %s %v", kept.Method, kept.Timeout)
	}
}

func TestSendDeliversSummary(t *testing.T) {
	rec := newRecorder(t)
	client := NewClient(&Config{URL: rec.URL, Timeout: 5 * time.Second}, fastRetries(0), nil)

	message := "tests/sum.c:3: failed with exit code 1\nexpected 10, got 9, ünïcode & <tags>\n"
	sent := output.NewSummary(&output.TestResult{Name: "sum", Status: output.StatusFail, Message: message}, 25)
	if err := client.Send(context.Background(), sent); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	calls := rec.calls()
	if len(calls) != 1 {
		t.Fatalf("got %d requests, want 1", len(calls))
	}
	if ct := calls[0].header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got output.Summary
	if err := json.Unmarshal(calls[0].body, &got); err != nil {
		t.Fatalf("body is not a summary: %v", err)
	}
	if got.Tests[0].Message != message {
		t.Errorf("message = %q, want %q", got.Tests[0].Message, message)
	}
	if got.Status != output.StatusFail || got.MaxScore != 25 || got.Tests[0].Score != 0 {
		t.Errorf("summary = %+v", got)
	}
}

func TestSendRequestShape(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		wantMethod string
		wantHeader map[string]string
		absent     []string
	}{
		{
			name:       "bearer token",
			config:     Config{AuthType: AuthBearer, AuthToken: "tok"},
			wantMethod: http.MethodPost,
			wantHeader: map[string]string{"Authorization": "Bearer tok"},
			absent:     []string{"X-API-Key"},
		},
		{
			name:       "api key",
			config:     Config{AuthType: AuthAPIKey, AuthToken: "key"},
			wantMethod: http.MethodPost,
			wantHeader: map[string]string{"X-API-Key": "key"},
			absent:     []string{"Authorization"},
		},
		{
			name:       "no auth sends no credentials",
			config:     Config{AuthType: AuthNone, AuthToken: "ignored"},
			wantMethod: http.MethodPost,
			absent:     []string{"Authorization", "X-API-Key"},
		},
		{
			name:       "custom method and headers",
			config:     Config{Method: http.MethodPut, Headers: map[string]string{"X-Course": "comp2012", "X-Run": "7"}},
			wantMethod: http.MethodPut,
			wantHeader: map[string]string{"X-Course": "comp2012", "X-Run": "7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder(t)
			cfg := tt.config
			cfg.URL = rec.URL
			cfg.Timeout = 5 * time.Second

			if err := NewClient(&cfg, fastRetries(0), nil).Send(context.Background(), map[string]string{"k": "v"}); err != nil {
				t.Fatalf("Send failed: %v", err)
			}

			req := rec.calls()[0]
			if req.method != tt.wantMethod {
				t.Errorf("method = %s, want %s", req.method, tt.wantMethod)
			}
			for k, v := range tt.wantHeader {
				if got := req.header.Get(k); got != v {
					t.Errorf("%s = %q, want %q", k, got, v)
				}
			}
			for _, k := range tt.absent {
				if got := req.header.Get(k); got != "" {
					t.Errorf("%s should be absent, got %q", k, got)
				}
			}
		})
	}
}

func TestSendRetryPolicy(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		maxRetries   int
		wantAttempts int
		wantErr      string
	}{
		{name: "accepted first time", statuses: []int{http.StatusAccepted}, maxRetries: 3, wantAttempts: 1},
		{name: "recovers after unavailable", statuses: []int{503, 502, 200}, maxRetries: 3, wantAttempts: 3},
		{name: "rate limited then ok", statuses: []int{429, 204}, maxRetries: 1, wantAttempts: 2},
		{name: "client error is final", statuses: []int{404}, maxRetries: 3, wantAttempts: 1, wantErr: "attempt 1 failed with status 404"},
		{name: "retries exhausted", statuses: []int{500}, maxRetries: 2, wantAttempts: 3, wantErr: "webhook failed after 3 attempts: attempt 3 failed with status 500"},
		{name: "no retries configured", statuses: []int{503}, maxRetries: 0, wantAttempts: 1, wantErr: "webhook failed after 1 attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder(t, tt.statuses...)
			client := NewClient(&Config{URL: rec.URL, Timeout: 5 * time.Second}, fastRetries(tt.maxRetries), nil)

			err := client.Send(context.Background(), struct{}{})
			if tt.wantErr == "" && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
			}
			if got := len(rec.calls()); got != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", got, tt.wantAttempts)
			}
		})
	}
}

func TestSendLogsAttempts(t *testing.T) {
	tests := []struct {
		name     string
		statuses []int
		want     []string
	}{
		{
			name:     "retry then delivery",
			statuses: []int{503, 200},
			want:     []string{`msg="retrying webhook"`, "attempt=1", "max_retries=2", `msg="webhook delivered"`, "status=200"},
		},
		{
			name:     "give up on a client error",
			statuses: []int{401},
			want:     []string{`msg="non-retryable webhook status, giving up"`, "status=401"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder(t, tt.statuses...)
			var logs bytes.Buffer
			log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

			_ = NewClient(&Config{URL: rec.URL, Timeout: 5 * time.Second}, fastRetries(2), log).Send(context.Background(), struct{}{})

			out := logs.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("log missing %s:\n%s", want, out)
				}
			}
			if !strings.Contains(out, "webhook="+rec.URL) {
				t.Errorf("log lines should carry the endpoint:\n%s", out)
			}
		})
	}
}

func TestSendOverallTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(&Config{URL: server.URL, Timeout: 50 * time.Millisecond}, fastRetries(0), nil)
	start := time.Now()
	err := client.Send(context.Background(), struct{}{})
	if err == nil || !strings.Contains(err.Error(), "deadline exceeded") {
		t.Fatalf("error = %v, want a deadline error", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Send took %v past its budget", elapsed)
	}
}

func TestSendCanceledWhileBackingOff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cancel()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	retry := &RetryConfig{MaxRetries: 3, InitialDelay: 10 * time.Second, Multiplier: 2}
	err := NewClient(&Config{URL: server.URL, Timeout: time.Minute}, retry, nil).Send(ctx, struct{}{})
	if err == nil || !strings.Contains(err.Error(), "webhook timeout after 1 attempts") {
		t.Fatalf("error = %v, want the backoff to be cut short", err)
	}
}

func TestSendUnmarshalablePayload(t *testing.T) {
	rec := newRecorder(t)
	err := NewClient(&Config{URL: rec.URL}, fastRetries(0), nil).Send(context.Background(), func() {})
	if err == nil || !strings.Contains(err.Error(), "failed to marshal webhook payload") {
		t.Fatalf("error = %v", err)
	}
	if len(rec.calls()) != 0 {
		t.Error("nothing should be sent")
	}
}
