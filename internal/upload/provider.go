package upload

import (
	"context"
	"io"
)

// Provider stores run artifacts in remote storage
type Provider interface {
	// Upload stores the content of reader at remotePath
	Upload(ctx context.Context, reader io.Reader, remotePath, contentType string) error

	// Configure sets up the provider from merged settings
	Configure(ctx context.Context, config map[string]any) error

	// Name returns the provider name
	Name() string
}
