package obslog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("LOG_FORMAT", "yaml")
	t.Setenv("LOG_TO_FILE", "false")
	t.Setenv("LOG_FILE", "")
	o := OptionsFromEnv()
	if o.Level != zapcore.WarnLevel {
		t.Fatalf("level = %v", o.Level)
	}
	if o.Format != "legacy" {
		t.Fatalf("unknown format should fall back to legacy, got %q", o.Format)
	}
	if o.ToFile || !o.Console {
		t.Fatalf("unexpected sinks: %+v", o)
	}
	if o.File != filepath.Join("logs", "blokus.log") {
		t.Fatalf("file = %q", o.File)
	}
}

func TestNewJSONToWriterAndFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "nested", "out.log")
	l, err := New(Options{Level: zapcore.InfoLevel, Console: true, ToFile: true, File: path, Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("hidden")
	l.Info("room_create", zap.String("room_id", "abc123"))
	_ = l.Sync()

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("stdout is not one json line: %v (%q)", err, buf.String())
	}
	if line["msg"] != "room_create" || line["room_id"] != "abc123" {
		t.Fatalf("unexpected entry %v", line)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), "room_create") || strings.Contains(string(raw), "hidden") {
		t.Fatalf("unexpected file content %q", raw)
	}
}

func TestSetRestoresNop(t *testing.T) {
	Set(zap.NewExample())
	Set(nil)
	if L() == nil {
		t.Fatalf("L() returned nil")
	}
	L().Info("dropped")
}
