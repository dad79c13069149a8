// Package logging appends diagnostics to a shared log file. A fullscreen TUI
// owns the terminal, so errors and trace events go to the file where they can
// be read after (or tailed alongside) the session.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "couchtv.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
)

// Configure sets the log destination, creating parent directories as needed.
// An empty path keeps the default.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
			return
		}
	}
	logPath = path
}

// SetTraceEnabled toggles emission of structured trace entries. Errors are
// always written.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// Error appends an error line to the log file.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	f, ferr := openLog()
	if ferr != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", ferr)
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s ERROR %v\n", time.Now().UTC().Format(time.RFC3339), err)
}

// Trace appends one self-describing JSON line per event when tracing is
// enabled, so the log can be filtered with standard line tools.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled {
		return
	}
	f, err := openLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace logging failed: %v\n", err)
		return
	}
	defer f.Close()

	entry := struct {
		TS      string      `json:"ts"`
		Event   string      `json:"event"`
		Payload interface{} `json:"data,omitempty"`
	}{
		TS:      time.Now().UTC().Format(time.RFC3339Nano),
		Event:   event,
		Payload: payload,
	}
	if err := json.NewEncoder(f).Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

func openLog() (*os.File, error) {
	return os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
