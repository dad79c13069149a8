package ui

import (
	"time"

	"github.com/mfenwick/couchtv/internal/backend"
	"github.com/mfenwick/couchtv/internal/remote"
	tea "github.com/charmbracelet/bubbletea"
)

// lineupEventMsg wraps a backend lineup refresh.
type lineupEventMsg backend.Event

// watcherClosedMsg signals the watcher's event channel has drained.
type watcherClosedMsg struct{}

// focusSettledMsg fires when focus has rested on an element for the settle
// window. Stale sequences are ignored.
type focusSettledMsg struct {
	seq int
}

// scrollFlushMsg fires after the scroll coalescing window.
type scrollFlushMsg struct {
	seq int
}

// interceptorCleanupMsg removes a back handler once its echo window has
// passed. Removing earlier would let an echoed back signal fall through to an
// older handler and dismiss two contexts for one press.
type interceptorCleanupMsg struct {
	token *remote.Token
}

// toastExpiredMsg clears the advisory line. Generation-tagged so a newer
// toast is not wiped by an older timer.
type toastExpiredMsg struct {
	gen int
}

// launchResultMsg reports the outcome of starting a multiview playback
// session. The selection session has already ended by the time it arrives.
type launchResultMsg struct {
	ids []string
	err error
}

func waitForLineupEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return watcherClosedMsg{}
		}
		return lineupEventMsg(evt)
	}
}

func settleTick(seq int) tea.Cmd {
	return tea.Tick(settleDelay, func(time.Time) tea.Msg {
		return focusSettledMsg{seq: seq}
	})
}

func scrollTick(seq int) tea.Cmd {
	return tea.Tick(scrollCoalesce, func(time.Time) tea.Msg {
		return scrollFlushMsg{seq: seq}
	})
}

func cleanupTick(token *remote.Token) tea.Cmd {
	return tea.Tick(remote.BackEchoWindow, func(time.Time) tea.Msg {
		return interceptorCleanupMsg{token: token}
	})
}

func toastTick(gen int) tea.Cmd {
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastExpiredMsg{gen: gen}
	})
}
