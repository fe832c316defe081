package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/zinc-sig/specter/internal/output"
)

// ActionsMarker prefixes the encoded summary on the workflow command line.
const ActionsMarker = "::set-output name=result::"

// ActionsSink writes the encoded summary as a workflow command and, when
// OutputFile is set, appends it as result=<encoded> to that file.
type ActionsSink struct {
	W          io.Writer
	OutputFile string
}

func (s *ActionsSink) Name() string { return "actions" }

func (s *ActionsSink) Publish(_ context.Context, summary *output.Summary) error {
	encoded, err := Encode(summary)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.W, "%s%s\n", ActionsMarker, encoded); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if s.OutputFile == "" {
		return nil
	}
	f, err := os.OpenFile(s.OutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := fmt.Fprintf(f, "result=%s\n", encoded); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// JSONSink writes the summary as a single JSON line.
type JSONSink struct {
	W io.Writer
}

func (s *JSONSink) Name() string { return "json" }

func (s *JSONSink) Publish(_ context.Context, summary *output.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	if _, err := fmt.Fprintln(s.W, string(data)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
