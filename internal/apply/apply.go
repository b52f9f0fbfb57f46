package apply

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"emblem/internal/config"
	"emblem/internal/fileutil"
	"emblem/internal/icons"
	"emblem/internal/logging"
)

// FileApplier publishes the active icon's renders into a directory consumed by
// the platform. Selecting the default sentinel removes the published files so
// the platform falls back to its built-in icon.
type FileApplier struct {
	dir    string
	logger *slog.Logger
}

// NewFileApplier builds an applier targeting the configured publish directory.
func NewFileApplier(cfg *config.Config, logger *slog.Logger) *FileApplier {
	return &FileApplier{
		dir:    cfg.Paths.ApplyDir,
		logger: logging.NewComponentLogger(logger, "apply"),
	}
}

// Apply writes one PNG per target size, replacing each file atomically so a
// reader never observes a half-written render. A nil record restores the
// default by removing the published files.
func (a *FileApplier) Apply(ctx context.Context, record *icons.Record) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("create apply directory: %w", err)
	}

	if record == nil {
		for _, size := range icons.TargetSizes {
			if err := fileutil.RemoveIfExists(a.pathFor(size)); err != nil {
				return err
			}
		}
		a.logger.Info("default icon restored")
		return nil
	}

	if err := icons.CheckSizes(record.Sizes); err != nil {
		return err
	}

	for _, size := range icons.TargetSizes {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := base64.StdEncoding.DecodeString(record.Sizes[size])
		if err != nil {
			return fmt.Errorf("decode %dpx render: %w", size, err)
		}
		if err := fileutil.WriteAtomic(a.pathFor(size), data, 0o644); err != nil {
			return err
		}
	}

	a.logger.Info("icon applied",
		logging.String("id", record.ID),
		logging.String("name", record.Name))
	return nil
}

func (a *FileApplier) pathFor(size int) string {
	return filepath.Join(a.dir, fmt.Sprintf("icon-%d.png", size))
}
