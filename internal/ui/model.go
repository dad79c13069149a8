package ui

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/mfenwick/couchtv/internal/backend"
	"github.com/mfenwick/couchtv/internal/catalog"
	"github.com/mfenwick/couchtv/internal/engine"
	"github.com/mfenwick/couchtv/internal/focus"
	"github.com/mfenwick/couchtv/internal/logging/events"
	"github.com/mfenwick/couchtv/internal/remote"
	"github.com/mfenwick/couchtv/internal/selection"
	"github.com/mfenwick/couchtv/internal/state"
	"github.com/mfenwick/couchtv/internal/theme"
	uistate "github.com/mfenwick/couchtv/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	settleDelay    = focus.SettleDelay
	scrollCoalesce = focus.ScrollCoalesce
	toastLifetime  = 3 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// HistoryRecorder persists multiview launches. Starting playback is a side
// effect outside the interaction core's critical path; its result posts back
// into the same message queue.
type HistoryRecorder interface {
	RecordLaunch(ctx context.Context, channelIDs []string) error
}

// Options configures the UI model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Watcher    *backend.Watcher
	History    HistoryRecorder
	// Channels seeds the grid directly; used by tests. At runtime the
	// lineup arrives through the watcher.
	Channels []catalog.Channel
}

// Model implements the Bubble Tea model for the channel browser.
type Model struct {
	grid        *uistate.Grid
	coordinator *focus.Coordinator
	stack       *remote.Stack
	selectGuard *remote.Guard
	// selectElement keys the select guard to the element it is protecting;
	// a press on a different element is a new activation, not an echo.
	selectElement string

	session      *selection.Session
	sessionToken *remote.Token

	overlays []*overlay

	lineup  state.LineupStore
	history HistoryRecorder
	watcher *backend.Watcher

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	highlighted string
	toast       string
	toastGen    int
	errMsg      string

	// deferred collects commands queued by back handlers, which run inside
	// Stack.Dispatch and cannot return tea.Cmds themselves.
	deferred []tea.Cmd

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state.
func NewModel(opts Options) *Model {
	grid := uistate.NewGrid(opts.Channels)
	lineup := state.NewLineupStore()
	lineup.SetChannels(opts.Channels)

	m := &Model{
		grid:        grid,
		stack:       remote.NewStack(),
		selectGuard: remote.NewGuard(remote.SelectReleaseWindow),
		session:     selection.NewSession(),
		lineup:      lineup,
		history:     opts.History,
		watcher:     opts.Watcher,
		showFooter:  opts.ShowFooter,
		verbose:     opts.Verbose,
	}
	m.coordinator = focus.NewCoordinator(&gridEngine{grid: grid}, "grid")
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.coordinator.SetMetrics(engine.Metrics{ViewportExtent: float64(m.maxVisibleRows()) * uistate.RowHeight})
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForLineupEvent(m.watcher)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):            m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):     m.handleWindowSizeMsg,
		reflect.TypeOf(tea.FocusMsg{}):          m.handleFocusRegainedMsg,
		reflect.TypeOf(lineupEventMsg{}):        m.handleLineupEventMsg,
		reflect.TypeOf(watcherClosedMsg{}):      m.handleWatcherClosedMsg,
		reflect.TypeOf(focusSettledMsg{}):       m.handleFocusSettledMsg,
		reflect.TypeOf(scrollFlushMsg{}):        m.handleScrollFlushMsg,
		reflect.TypeOf(interceptorCleanupMsg{}): m.handleInterceptorCleanupMsg,
		reflect.TypeOf(toastExpiredMsg{}):       m.handleToastExpiredMsg,
		reflect.TypeOf(launchResultMsg{}):       m.handleLaunchResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate drains commands queued by back handlers and batches them with
// the handler's own commands.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(m.deferred) > 0 {
		cmds = append(cmds, m.deferred...)
		m.deferred = nil
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) queueCmd(cmd tea.Cmd) {
	if cmd != nil {
		m.deferred = append(m.deferred, cmd)
	}
}

// dispatchBack routes a back signal through the interceptor stack; when no
// handler claims it, default navigation leaves the screen.
func (m *Model) dispatchBack() tea.Cmd {
	if m.stack.Dispatch() {
		return nil
	}
	return tea.Quit
}

// admitSelect applies the confirm-press reentrancy guard. Platforms can emit
// duplicate activation events for one physical press; a repeat on the same
// element inside the guard window is dropped.
func (m *Model) admitSelect(element string) bool {
	if element != m.selectElement {
		m.selectGuard.Release()
		m.selectElement = element
	}
	if !m.selectGuard.Begin() {
		return false
	}
	m.selectGuard.End()
	return true
}

// onFocusChanged reacts to the cursor landing on a new tile: it restarts
// both debounce windows and reveals more rows when focus nears the rendered
// boundary, so navigation never outruns content.
func (m *Model) onFocusChanged() tea.Cmd {
	ch, ok := m.grid.Current()
	if !ok {
		return nil
	}
	events.UI.Cursor(m.grid.CursorRow(), m.grid.CursorCol())
	plan := m.coordinator.OnFocus(ch.Key(), m.grid.CursorRow(), m.grid.RenderedRows(), m.grid.TotalRows())
	if plan.PrefetchFrom >= 0 {
		m.grid.RevealMore()
	}
	return tea.Batch(settleTick(plan.SettleSeq), scrollTick(plan.ScrollSeq))
}

func (m *Model) handleFocusSettledMsg(msg tea.Msg) tea.Cmd {
	settled, ok := msg.(focusSettledMsg)
	if !ok {
		return nil
	}
	if element, current := m.coordinator.Settle(settled.seq); current {
		m.highlighted = element
	}
	return nil
}

func (m *Model) handleScrollFlushMsg(msg tea.Msg) tea.Cmd {
	flush, ok := msg.(scrollFlushMsg)
	if !ok {
		return nil
	}
	m.coordinator.FlushScroll(flush.seq)
	return nil
}

func (m *Model) handleInterceptorCleanupMsg(msg tea.Msg) tea.Cmd {
	cleanup, ok := msg.(interceptorCleanupMsg)
	if !ok {
		return nil
	}
	cleanup.token.Remove()
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.coordinator.SetMetrics(engine.Metrics{
		Offset:         m.grid.ScrollOffset(),
		ViewportExtent: float64(m.maxVisibleRows()) * uistate.RowHeight,
	})
	return nil
}

// handleFocusRegainedMsg invalidates the position cache when the terminal
// regains focus: content may have reflowed while the screen was hidden.
func (m *Model) handleFocusRegainedMsg(tea.Msg) tea.Cmd {
	m.coordinator.InvalidateAll("refocus")
	if ch, ok := m.grid.Current(); ok {
		m.coordinator.GrabFocus(ch.Key())
		return m.onFocusChanged()
	}
	return nil
}

func (m *Model) handleLineupEventMsg(msg tea.Msg) tea.Cmd {
	evt, ok := msg.(lineupEventMsg)
	if !ok {
		return nil
	}
	cmds := []tea.Cmd{waitForLineupEvent(m.watcher)}
	if evt.Err != nil {
		m.errMsg = evt.Err.Error()
		return tea.Batch(cmds...)
	}
	m.errMsg = ""
	m.lineup.SetChannels(evt.Channels)
	m.grid.SetChannels(evt.Channels)
	events.App.LineupLoaded(m.grid.TotalRows(), len(evt.Channels))
	// A lineup refresh is a data refresh, not a layout event: the focus
	// position cache deliberately survives it.
	return tea.Batch(cmds...)
}

func (m *Model) handleWatcherClosedMsg(tea.Msg) tea.Cmd {
	return nil
}

func (m *Model) handleToastExpiredMsg(msg tea.Msg) tea.Cmd {
	expired, ok := msg.(toastExpiredMsg)
	if !ok {
		return nil
	}
	if expired.gen == m.toastGen {
		m.toast = ""
	}
	return nil
}

func (m *Model) handleLaunchResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(launchResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		// The session already ended; no rollback. The user re-enters
		// selection mode if they want to retry.
		m.errMsg = "Could not start playback: " + result.err.Error()
		return nil
	}
	m.errMsg = ""
	if len(result.ids) > 1 {
		return m.setToast(fmt.Sprintf("Now watching %d channels", len(result.ids)))
	}
	return m.setToast("Now watching " + m.channelName(result.ids))
}

func (m *Model) channelName(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	for _, ch := range m.lineup.Channels() {
		if ch.ID == ids[0] {
			return ch.Name
		}
	}
	return ids[0]
}

func (m *Model) setToast(text string) tea.Cmd {
	m.toast = text
	m.toastGen++
	return toastTick(m.toastGen)
}

func (m *Model) maxVisibleRows() int {
	height := m.height
	if height <= 0 {
		height = 24
	}
	rows := (height - 6) / 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

// launchCmd records the multiview start outside the event loop and posts the
// result back as a message.
func (m *Model) launchCmd(ids []string) tea.Cmd {
	events.UI.Launch(ids)
	history := m.history
	return func() tea.Msg {
		if history == nil {
			return launchResultMsg{ids: ids}
		}
		err := history.RecordLaunch(context.Background(), ids)
		return launchResultMsg{ids: ids, err: err}
	}
}

