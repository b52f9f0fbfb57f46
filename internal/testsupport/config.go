package testsupport

import (
	"path/filepath"
	"testing"

	"emblem/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ApplyDir = filepath.Join(base, "active")
	cfg.Paths.SocketPath = filepath.Join(base, "emblemd.sock")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithMaxIcons overrides the collection ceiling on the test config.
func WithMaxIcons(limit int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Limits.MaxIcons = limit
	}
}

// WithMaxFileBytes overrides the upload size ceiling on the test config.
func WithMaxFileBytes(limit int64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Limits.MaxFileBytes = limit
	}
}
