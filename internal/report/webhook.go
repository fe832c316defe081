package report

import (
	"context"

	"github.com/zinc-sig/specter/internal/output"
	"github.com/zinc-sig/specter/internal/webhook"
)

// WebhookSink posts the summary as JSON through a webhook client.
type WebhookSink struct {
	Client *webhook.Client
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Publish(ctx context.Context, summary *output.Summary) error {
	return s.Client.Send(ctx, summary)
}
