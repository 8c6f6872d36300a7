package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("missing muscle data", "muscle", "Glutes")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "muscle=Glutes") {
		t.Errorf("expected attribute in output, got: %s", out)
	}
}

func TestNewFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fitguide.log")

	logger, closer, err := NewFile(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	logger.Info("hello")
	closer.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(content), "hello") {
		t.Errorf("expected log line, got %q", content)
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Error("OrDiscard(nil) returned nil")
	}
}
