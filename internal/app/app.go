package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/mfenwick/couchtv/internal/backend"
	"github.com/mfenwick/couchtv/internal/catalog"
	"github.com/mfenwick/couchtv/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	CatalogPath     string
	Width           int
	Height          int
	ShowFooter      bool
	Verbose         bool
	RefreshInterval time.Duration
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	store, err := catalog.OpenStore(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	watcher := backend.NewWatcher(store, interval)
	defer watcher.Stop()

	model := ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Watcher:    watcher,
		History:    store,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
