package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-joinform/pkg/config"
	"github.com/goliatone/go-joinform/pkg/logging"
)

func TestNew_WritesJSONAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joinform.log")
	logger, err := logging.New(config.LoggingConfig{Level: "warn", Format: "json", OutputPath: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["msg"] != "kept" || entry["logger"] != "joinform" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	if _, err := logging.New(config.LoggingConfig{Level: "loud", Format: "json"}); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := logging.New(config.LoggingConfig{Level: "info", Format: "xml"}); err == nil {
		t.Fatalf("expected format error")
	}
}
