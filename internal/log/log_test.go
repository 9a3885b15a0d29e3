package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).With().Str("test", "value").Logger()
	SetLogger(&l)
	t.Cleanup(func() { _ = Init(Config{}) })

	Infof("processed %d lines", 3)

	logged := parseLogMessage(t, buf.String())
	if logged["test"] != "value" {
		t.Error("SetLogger() did not set the logger with expected context")
	}
	if logged["message"] != "processed 3 lines" {
		t.Errorf("unexpected message %v", logged["message"])
	}
}

func TestGetLoggerConsistent(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil")
	}
	if GetLogger().GetLevel() != GetLogger().GetLevel() {
		t.Error("GetLogger() returned inconsistent loggers")
	}
}

func TestInitLevel(t *testing.T) {
	t.Cleanup(func() { _ = Init(Config{}) })

	if err := Init(Config{Level: "DEBUG"}); err != nil {
		t.Fatal(err)
	}
	if got := GetLogger().GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %v", got)
	}

	if err := Init(Config{}); err != nil {
		t.Fatal(err)
	}
	if got := GetLogger().GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("expected default warn level, got %v", got)
	}

	if err := Init(Config{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestInitFileSink(t *testing.T) {
	t.Cleanup(func() { _ = Init(Config{}) })

	path := filepath.Join(t.TempDir(), "hitcount.log")
	if err := Init(Config{Level: "info", File: path, NoColor: true}); err != nil {
		t.Fatal(err)
	}

	Infof("hello %s", "file")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "hello file") {
		t.Errorf("expected message in log file, got %q", string(raw))
	}
}

func parseLogMessage(t *testing.T, msg string) map[string]interface{} {
	var logged map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(msg)), &logged); err != nil {
		t.Fatalf("failed to parse log message: %v", err)
	}
	return logged
}
