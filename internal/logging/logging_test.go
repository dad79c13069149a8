package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "couchtv.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestTraceWritesJSONLineWhenEnabled(t *testing.T) {
	path := useTempLog(t)
	SetTraceEnabled(true)

	Trace("remote.push", map[string]interface{}{"owner": "filter", "depth": 1})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	var entry struct {
		TS    string                 `json:"ts"`
		Event string                 `json:"event"`
		Data  map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log entry is not JSON: %v (%q)", err, data)
	}
	if entry.Event != "remote.push" {
		t.Fatalf("expected event remote.push, got %q", entry.Event)
	}
	if entry.Data["owner"] != "filter" {
		t.Fatalf("expected owner in payload, got %v", entry.Data)
	}
	if entry.TS == "" {
		t.Fatalf("expected timestamp on entry")
	}
}

func TestTraceIsSilentWhenDisabled(t *testing.T) {
	path := useTempLog(t)
	SetTraceEnabled(false)

	Trace("ui.cursor", map[string]interface{}{"row": 1})

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file when tracing is disabled, got err=%v", err)
	}
}

func TestErrorAlwaysWrites(t *testing.T) {
	path := useTempLog(t)
	SetTraceEnabled(false)

	Error(errors.New("catalog unavailable"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "ERROR catalog unavailable") {
		t.Fatalf("expected error line, got %q", line)
	}
}
