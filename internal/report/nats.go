package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/zinc-sig/specter/internal/output"
)

// NATSSink publishes the summary JSON on a subject.
type NATSSink struct {
	URL     string
	Subject string
	Timeout time.Duration
}

func (s *NATSSink) Name() string { return "nats" }

func (s *NATSSink) Publish(ctx context.Context, summary *output.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	nc, err := nats.Connect(s.URL, nats.Name("specter"), nats.Timeout(timeout))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", s.URL, err)
	}
	defer nc.Close()

	if err := nc.Publish(s.Subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", s.Subject, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush publish to %s: %w", s.Subject, err)
	}
	return nil
}
