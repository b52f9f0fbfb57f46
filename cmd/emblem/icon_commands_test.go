package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"emblem/internal/testsupport"
)

func TestUploadListUseRemove(t *testing.T) {
	env := setupCLITestEnv(t)

	imgPath := filepath.Join(t.TempDir(), "badge.png")
	if err := os.WriteFile(imgPath, testsupport.PNGBytes(t, 64, 64, color.RGBA{R: 200, A: 255}), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	out, _, err := runCLI(t, []string{"upload", imgPath}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	requireContains(t, out, `Stored icon "badge"`)

	out, _, err = runCLI(t, []string{"list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "badge")
	requireContains(t, out, "Active: default icon")

	out, _, err = runCLI(t, []string{"use", "badge"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("use: %v", err)
	}
	requireContains(t, out, "Active icon is now")

	out, _, err = runCLI(t, []string{"list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("list after use: %v", err)
	}
	if strings.Contains(out, "Active: default icon") {
		t.Fatalf("expected custom icon active, got %q", out)
	}
	requireContains(t, out, "*")

	out, _, err = runCLI(t, []string{"use", "default"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("use default: %v", err)
	}
	requireContains(t, out, "Default icon restored")

	out, _, err = runCLI(t, []string{"remove", "badge"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	requireContains(t, out, "Removed icon")

	out, _, err = runCLI(t, []string{"list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	requireContains(t, out, "No custom icons stored")
}

func TestUploadWithUseFlagActivates(t *testing.T) {
	env := setupCLITestEnv(t)

	imgPath := filepath.Join(t.TempDir(), "mark.png")
	if err := os.WriteFile(imgPath, testsupport.PNGBytes(t, 32, 32, color.RGBA{B: 180, A: 255}), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	out, _, err := runCLI(t, []string{"upload", "--use", imgPath}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("upload --use: %v", err)
	}
	requireContains(t, out, `Active icon is now "mark"`)
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	env := setupCLITestEnv(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, _, err := runCLI(t, []string{"upload", path}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestUploadFailsFastAtCapacity(t *testing.T) {
	env := setupCLITestEnv(t)

	for i := 0; i < env.cfg.Limits.MaxIcons; i++ {
		if _, err := env.store.Add(context.Background(), testsupport.Assets(t), fmt.Sprintf("icon-%d", i)); err != nil {
			t.Fatalf("seed icon %d: %v", i, err)
		}
	}

	imgPath := filepath.Join(t.TempDir(), "extra.png")
	if err := os.WriteFile(imgPath, testsupport.PNGBytes(t, 32, 32, color.RGBA{G: 120, A: 255}), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	_, _, err := runCLI(t, []string{"upload", imgPath}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected capacity rejection")
	}
	requireContains(t, err.Error(), "icon limit reached")
}

func TestUseUnknownSelectorFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"use", "no-such-icon"}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected resolution failure")
	}
	requireContains(t, err.Error(), "no stored icon matches")
}
