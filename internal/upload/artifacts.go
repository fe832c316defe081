package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"

	"github.com/zinc-sig/specter/internal/output"
)

// Artifact names under the per-run directory.
const (
	ResultObject     = "result.json"
	TranscriptObject = "output.log.gz"
)

// Artifacts is what gets stored for one judged run.
type Artifacts struct {
	RunID      string
	Summary    *output.Summary
	Transcript []byte
}

// Paths returns the remote paths the artifacts are stored at.
func (a *Artifacts) Paths() []string {
	return []string{path.Join(a.RunID, ResultObject), path.Join(a.RunID, TranscriptObject)}
}

// UploadArtifacts stores the summary as JSON and the transcript gzip
// compressed, concurrently.
func UploadArtifacts(ctx context.Context, provider Provider, a *Artifacts) error {
	summary, err := json.Marshal(a.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	transcript, err := compress(a.Transcript)
	if err != nil {
		return fmt.Errorf("failed to compress transcript: %w", err)
	}

	paths := a.Paths()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return provider.Upload(gctx, bytes.NewReader(summary), paths[0], "application/json")
	})
	g.Go(func() error {
		return provider.Upload(gctx, bytes.NewReader(transcript), paths[1], "application/gzip")
	})
	return g.Wait()
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
