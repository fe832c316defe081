package helpers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zinc-sig/specter/cmd/config"
	"github.com/zinc-sig/specter/internal/settings"
	"github.com/zinc-sig/specter/internal/upload"
)

// UploadEnvPrefix is the environment prefix for upload settings
const UploadEnvPrefix = "SPECTER_UPLOAD_CONFIG"

// BuildUploadConfig builds upload configuration from all sources
func BuildUploadConfig(cfg *config.UploadConfig) (map[string]any, error) {
	conf, err := settings.Build(UploadEnvPrefix, cfg.Config, cfg.ConfigKV, cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload config: %w", err)
	}
	return conf, nil
}

// SetupUploadProvider creates and configures an upload provider, or returns
// nil when none is requested
func SetupUploadProvider(ctx context.Context, cfg *config.UploadConfig) (upload.Provider, map[string]any, error) {
	if cfg.Provider == "" {
		return nil, nil, nil
	}

	uploadConf, err := BuildUploadConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	provider, err := upload.NewProvider(cfg.Provider)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create upload provider: %w", err)
	}

	if err := provider.Configure(ctx, uploadConf); err != nil {
		return nil, nil, fmt.Errorf("failed to configure upload provider: %w", err)
	}

	return provider, uploadConf, nil
}

// HandleUploads stores the run artifacts. Failures are logged and reported
// but never change the verdict.
func HandleUploads(ctx context.Context, provider upload.Provider, artifacts *upload.Artifacts, log *slog.Logger) error {
	if provider == nil {
		return nil
	}

	if err := upload.UploadArtifacts(ctx, provider, artifacts); err != nil {
		log.Warn("failed to upload artifacts", "provider", provider.Name(), "err", err)
		return err
	}

	for _, p := range artifacts.Paths() {
		log.Info("uploaded artifact", "provider", provider.Name(), "path", p)
	}
	return nil
}

// LogUploadInfo logs upload configuration without secrets
func LogUploadInfo(log *slog.Logger, provider upload.Provider, conf map[string]any) {
	attrs := []any{"provider", provider.Name()}
	for _, key := range []string{"endpoint", "bucket", "prefix", "region"} {
		if v, ok := settings.String(conf, key); ok {
			attrs = append(attrs, key, v)
		}
	}
	log.Debug("upload configured", attrs...)
}
