package main

import (
	"fmt"
	"os"

	"github.com/mfenwick/couchtv/internal/app"
	"github.com/mfenwick/couchtv/internal/config"
	"github.com/mfenwick/couchtv/internal/logging"
	"github.com/mfenwick/couchtv/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupTrace(cfg))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTrace summarises the effective runtime configuration for the trace
// log, so a session can be diagnosed without knowing how it was invoked.
func startupTrace(cfg config.Config) map[string]interface{} {
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    cfg.Flags,
		"catalog":  cfg.App.CatalogPath,
		"refresh":  cfg.App.RefreshInterval.String(),
		"viewport": fmt.Sprintf("%dx%d", cfg.App.Width, cfg.App.Height),
		"footer":   cfg.App.ShowFooter,
		"logFile":  cfg.Logging.FilePath,
		"trace":    cfg.Logging.Trace,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	payload["terminal"] = terminalProfile()
	return payload
}

type terminalInfo struct {
	StdinTTY  bool `json:"stdin_tty"`
	StdoutTTY bool `json:"stdout_tty"`
	Width     int  `json:"width,omitempty"`
	Height    int  `json:"height,omitempty"`
}

// terminalProfile reports whether the two descriptors the program drives are
// terminals, and the drawing surface size when stdout is one. Width/height 0
// means the size flags (or Bubble Tea's own probe) decide.
func terminalProfile() terminalInfo {
	info := terminalInfo{
		StdinTTY:  term.IsTerminal(int(os.Stdin.Fd())),
		StdoutTTY: term.IsTerminal(int(os.Stdout.Fd())),
	}
	if info.StdoutTTY {
		if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			info.Width = width
			info.Height = height
		}
	}
	return info
}
