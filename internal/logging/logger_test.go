package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dcsmission/streamcore/internal/config"
)

func TestLoggerWithAddsFieldsWithoutMutatingParent(t *testing.T) {
	base := NewTestLogger()
	child := base.With(String("trace_id", "abc123"))

	if _, ok := base.fields["trace_id"]; ok {
		t.Fatalf("expected parent logger fields untouched, got %v", base.fields)
	}
	if got := child.fields["trace_id"]; got != "abc123" {
		t.Fatalf("expected child field trace_id=abc123, got %v", got)
	}
}

func TestLevelFiltersBelowConfiguredLevel(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(config.LoggingConfig{
		Level:     "warn",
		Path:      filepath.Join(dir, "stream.log"),
		MaxSizeMB: 1,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("should be dropped")
	logger.Warn("should be kept")
	if err := logger.Sync(); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stream.log"))
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one log line past the warn filter, got %d: %q", len(lines), data)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &payload); err != nil {
		t.Fatalf("json.Unmarshal returned error: %v", err)
	}
	if payload["message"] != "should be kept" {
		t.Fatalf("expected the warn line to survive, got %v", payload)
	}
}

func TestWithTraceGeneratesIDWhenNoneProvided(t *testing.T) {
	ctx, logger, traceID := WithTrace(context.Background(), NewTestLogger(), "")
	if traceID == "" {
		t.Fatal("expected a generated trace ID, got empty string")
	}
	if got := TraceIDFromContext(ctx); got != traceID {
		t.Fatalf("expected context trace id %q, got %q", traceID, got)
	}
	if got := LoggerFromContext(ctx); got != logger {
		t.Fatalf("expected context logger to be the derived logger")
	}
	if got := logger.fields[TraceIDField]; got != traceID {
		t.Fatalf("expected logger field %s=%q, got %v", TraceIDField, traceID, got)
	}
}

func TestWithTraceReusesProvidedID(t *testing.T) {
	_, _, traceID := WithTrace(context.Background(), NewTestLogger(), "fixed-id")
	if traceID != "fixed-id" {
		t.Fatalf("expected the provided trace id to be reused, got %q", traceID)
	}
}

func TestLoggerFromContextFallsBackToGlobal(t *testing.T) {
	if got := LoggerFromContext(context.Background()); got != L() {
		t.Fatal("expected LoggerFromContext to fall back to the global logger")
	}
}

func TestRotatingWriterRotatesPastMaxSize(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "stream.log")
	writer, err := newRotatingWriter(config.LoggingConfig{
		Path:       logPath,
		MaxSizeMB:  1,
		MaxBackups: 2,
	})
	if err != nil {
		t.Fatalf("newRotatingWriter returned error: %v", err)
	}

	writer.maxSize = 16
	if _, err := writer.Write([]byte("0123456789abcdef")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if _, err := writer.Write([]byte("triggers-rotation")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir returned error: %v", err)
	}
	rotated := 0
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "stream.log.") {
			rotated++
		}
	}
	if rotated != 1 {
		t.Fatalf("expected exactly one rotated backup file, got %d (%v)", rotated, entries)
	}
}
