// Package backend refreshes the channel lineup in the background. The UI
// never blocks on the catalog; lineup changes arrive as events on the same
// message queue as input.
package backend

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mfenwick/couchtv/internal/catalog"
)

// Lineuper is the slice of the catalog store the watcher needs.
type Lineuper interface {
	Lineup(ctx context.Context) ([]catalog.Channel, error)
}

// Event conveys a refreshed lineup or a fetch error.
type Event struct {
	Channels []catalog.Channel
	Err      error
}

// Watcher polls the catalog at a fixed interval and publishes an event only
// when the lineup actually changed, so the UI is not churned by no-op
// refreshes (which must not invalidate the focus position cache).
type Watcher struct {
	source   Lineuper
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates and starts a lineup watcher.
func NewWatcher(source Lineuper, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}
	w.wg.Add(1)
	go w.poll()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w
}

// Events returns the channel of lineup events. The first event carries the
// initial lineup.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current fetch.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	var lastFingerprint string
	emit := func(force bool) bool {
		channels, err := w.source.Lineup(w.ctx)
		fp := fingerprint(channels)
		if err == nil && !force && fp == lastFingerprint {
			return true
		}
		if err == nil {
			lastFingerprint = fp
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- Event{Channels: channels, Err: err}:
			return true
		}
	}

	if !emit(true) {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit(false) {
				return
			}
		}
	}
}

func fingerprint(channels []catalog.Channel) string {
	var b strings.Builder
	for _, ch := range channels {
		b.WriteString(ch.ID)
		b.WriteByte('|')
		b.WriteString(ch.Genre)
		b.WriteByte(';')
	}
	return b.String()
}
