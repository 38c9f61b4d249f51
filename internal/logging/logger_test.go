package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/config"
)

func TestConsoleHandlerFormatsRecord(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("book added", "title", "Ulysses", "count", 3)

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Fatalf("missing level label: %q", line)
	}
	if !strings.Contains(line, "book added") {
		t.Fatalf("missing message: %q", line)
	}
	if !strings.Contains(line, "title=Ulysses") || !strings.Contains(line, "count=3") {
		t.Fatalf("missing attrs: %q", line)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	logger.Info("search", "query", "james joyce")

	if !strings.Contains(buf.String(), `query="james joyce"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerGroupsPrefixKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar))).WithGroup("backend")

	logger.Info("request", "status", 404)

	if !strings.Contains(buf.String(), "backend.status=404") {
		t.Fatalf("expected group-prefixed key, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be suppressed: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestJSONHandlerUsesCanonicalKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newJSONHandler(&buf, new(slog.LevelVar)))

	logger.Error("request failed", "status", 500)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["msg"] != "request failed" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["level"] != "error" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatal("expected ts key")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	cfg := &config.Config{
		Logging: config.Logging{Format: "console", Level: "info"},
		Paths:   config.Paths{LogDir: logDir},
	}

	logger, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("book added", "id", "b-1")

	data, err := os.ReadFile(filepath.Join(logDir, "folio.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "book added") {
		t.Fatalf("log file missing record: %q", string(data))
	}
}

func TestNewFromConfigNilConfigFallsBack(t *testing.T) {
	logger, err := NewFromConfig(nil)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if logger == nil {
		t.Fatal("expected a usable logger")
	}
}
