package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsRecord(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("icon added", String(FieldComponent, "store"), String("id", "abc"), Int("count", 3))

	line := buf.String()
	if !strings.Contains(line, "INFO store: icon added") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "id=abc") || !strings.Contains(line, "count=3") {
		t.Fatalf("expected attrs in line: %q", line)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("saved", String("name", "team logo"))

	if !strings.Contains(buf.String(), `name="team logo"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info record below warn level to be dropped, got %q", buf.String())
	}

	logger.Warn("kept")
	if !strings.Contains(buf.String(), "WARN") {
		t.Fatalf("expected warn record, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "test")
	// Must not panic and must be safe to use.
	logger.Info("noop")
}
