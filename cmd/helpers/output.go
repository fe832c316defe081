package helpers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"

	"github.com/zinc-sig/specter/cmd/config"
	"github.com/zinc-sig/specter/internal/report"
)

// Result formats on stdout
const (
	FormatActions = "actions"
	FormatJSON    = "json"
)

// NewLogger returns a tint logger on w, at debug level when verbose
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    color.NoColor,
	}))
}

// PrimarySink returns the stdout sink for the requested format
func PrimarySink(format string, w io.Writer) (report.Sink, error) {
	switch format {
	case FormatActions, "":
		return &report.ActionsSink{W: w, OutputFile: os.Getenv("GITHUB_OUTPUT")}, nil
	case FormatJSON:
		return &report.JSONSink{W: w}, nil
	default:
		return nil, fmt.Errorf("unknown result format: %s", format)
	}
}

// SetupQueueSinks returns sinks for the configured message buses
func SetupQueueSinks(ctx context.Context, cfg *config.QueueConfig) ([]report.Sink, error) {
	var sinks []report.Sink

	if cfg.NATSURL != "" {
		if cfg.NATSSubject == "" {
			return nil, fmt.Errorf("nats subject must not be empty")
		}
		sinks = append(sinks, &report.NATSSink{URL: cfg.NATSURL, Subject: cfg.NATSSubject})
	}

	if cfg.SQSQueueURL != "" {
		sink, err := report.NewSQSSink(ctx, cfg.SQSQueueURL, cfg.SQSRegion)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}

	return sinks, nil
}
