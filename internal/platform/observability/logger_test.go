package observability_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studyclock/internal/platform/observability"
)

func TestNewWritesJSONLines(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := observability.New(&buf, "debug").Named("timer")
	logger.Info("phase completed", "phase", "study", "remaining", 0)

	line := strings.TrimSpace(buf.String())
	decoded := map[string]any{}
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("decode log line %q: %v", line, err)
	}
	if decoded["@message"] != "phase completed" {
		t.Fatalf("unexpected message: %v", decoded["@message"])
	}
	if decoded["@module"] != "studyclock.timer" {
		t.Fatalf("unexpected module: %v", decoded["@module"])
	}
	if decoded["phase"] != "study" {
		t.Fatalf("missing phase field: %v", decoded)
	}
}

func TestNewFileAppends(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "studyclock.log")
	logger, closeFn, err := observability.NewFile(path, "info")
	if err != nil {
		t.Fatalf("new file logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Warn("visible")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(raw), "hidden") || !strings.Contains(string(raw), "visible") {
		t.Fatalf("unexpected log content: %s", raw)
	}
}
