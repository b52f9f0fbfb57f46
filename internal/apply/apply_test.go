package apply_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"emblem/internal/apply"
	"emblem/internal/icons"
	"emblem/internal/testsupport"
)

func testRecord(t *testing.T) *icons.Record {
	t.Helper()
	assets := testsupport.Assets(t)
	return &icons.Record{
		ID:          "icon-1",
		Name:        "logo",
		MediaKind:   assets.MediaKind,
		SourceImage: assets.SourceImage,
		Sizes:       assets.Sizes,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestApplyWritesAllSizes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	applier := apply.NewFileApplier(cfg, nil)

	if err := applier.Apply(context.Background(), testRecord(t)); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for _, size := range icons.TargetSizes {
		path := filepath.Join(cfg.Paths.ApplyDir, fmt.Sprintf("icon-%d.png", size))
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("published file is not a PNG: %v", err)
		}
		if img.Bounds().Dx() != size || img.Bounds().Dy() != size {
			t.Fatalf("published %dpx file has bounds %v", size, img.Bounds())
		}
	}
}

func TestApplyLeavesNoTempFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	applier := apply.NewFileApplier(cfg, nil)

	if err := applier.Apply(context.Background(), testRecord(t)); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	entries, err := os.ReadDir(cfg.Paths.ApplyDir)
	if err != nil {
		t.Fatalf("read apply dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestApplyNilRestoresDefault(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	applier := apply.NewFileApplier(cfg, nil)
	ctx := context.Background()

	if err := applier.Apply(ctx, testRecord(t)); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := applier.Apply(ctx, nil); err != nil {
		t.Fatalf("Apply(nil) failed: %v", err)
	}

	for _, size := range icons.TargetSizes {
		path := filepath.Join(cfg.Paths.ApplyDir, fmt.Sprintf("icon-%d.png", size))
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("expected %s to be removed, stat err %v", path, err)
		}
	}
}

func TestApplyNilOnEmptyDirSucceeds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	applier := apply.NewFileApplier(cfg, nil)

	if err := applier.Apply(context.Background(), nil); err != nil {
		t.Fatalf("Apply(nil) on empty dir failed: %v", err)
	}
}

func TestApplyRejectsIncompleteSizes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	applier := apply.NewFileApplier(cfg, nil)

	record := testRecord(t)
	delete(record.Sizes, 128)

	if err := applier.Apply(context.Background(), record); err == nil {
		t.Fatal("expected incomplete size set to be rejected")
	}
}

func TestApplyRejectsBadBase64(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	applier := apply.NewFileApplier(cfg, nil)

	record := testRecord(t)
	record.Sizes[16] = "!!! not base64 !!!"

	err := applier.Apply(context.Background(), record)
	if err == nil {
		t.Fatal("expected base64 decode failure")
	}
	var decodeErr base64.CorruptInputError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("unexpected error: %v", err)
	}
}
