// Package report delivers a run summary to the pipeline that invoked the
// judge.
package report

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zinc-sig/specter/internal/output"
)

// Sink is a destination for a run summary.
type Sink interface {
	Name() string
	Publish(ctx context.Context, summary *output.Summary) error
}

// Encode returns the base64 encoded JSON form of the summary.
func Encode(summary *output.Summary) (string, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses Encode.
func Decode(encoded string) (*output.Summary, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 summary: %w", err)
	}
	var summary output.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("invalid summary JSON: %w", err)
	}
	return &summary, nil
}

// PublishAll publishes to every sink in order. A failing sink does not stop
// the others; all failures are logged and returned joined.
func PublishAll(ctx context.Context, log *slog.Logger, summary *output.Summary, sinks ...Sink) error {
	var errs []error
	for _, sink := range sinks {
		if err := sink.Publish(ctx, summary); err != nil {
			log.Warn("failed to publish result", "sink", sink.Name(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		log.Debug("published result", "sink", sink.Name())
	}
	return errors.Join(errs...)
}
