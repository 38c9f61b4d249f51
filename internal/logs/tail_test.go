package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"folio/internal/logs"
)

func writeLines(t *testing.T, path string, lines string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("write log file: %v", err)
	}
}

func TestTailReturnsLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.log")
	writeLines(t, path, "one\ntwo\nthree\nfour\n")

	lines, offset, err := logs.Tail(path, 2)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "three" || lines[1] != "four" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if offset == 0 {
		t.Fatal("expected a non-zero end offset")
	}
}

func TestTailMissingFile(t *testing.T) {
	lines, offset, err := logs.Tail(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(lines) != 0 || offset != 0 {
		t.Fatalf("expected empty result, got %#v at %d", lines, offset)
	}
}

func TestTailFewerLinesThanLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.log")
	writeLines(t, path, "only\n")

	lines, _, err := logs.Tail(path, 10)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "only" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestWaitPicksUpAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.log")
	writeLines(t, path, "old\n")

	_, offset, err := logs.Tail(path, 0)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	if _, err := file.WriteString("fresh\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = file.Close()

	lines, newOffset, err := logs.Wait(context.Background(), path, offset, time.Second)
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "fresh" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if newOffset <= offset {
		t.Fatalf("offset should advance, got %d -> %d", offset, newOffset)
	}
}

func TestWaitTimesOutWithoutNewLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.log")
	writeLines(t, path, "old\n")

	_, offset, err := logs.Tail(path, 0)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	lines, _, err := logs.Wait(context.Background(), path, offset, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected no lines, got %#v", lines)
	}
}
