package ui

import (
	"fmt"

	"github.com/mfenwick/couchtv/internal/catalog"
	"github.com/mfenwick/couchtv/internal/engine"
	"github.com/mfenwick/couchtv/internal/logging/events"
	"github.com/mfenwick/couchtv/internal/remote"
	"github.com/mfenwick/couchtv/internal/selection"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type overlayKind int

const (
	overlayFilter overlayKind = iota
	overlayMenu
	overlayConfirm
)

type menuItem struct {
	id    string
	label string
}

// overlay is one visible layer above the grid. Each overlay owns exactly one
// interceptor registration: pushed when it opens, removal scheduled when it
// closes. The registration outlives the overlay by the echo window so a
// duplicated back signal cannot fall through and dismiss whatever is below.
type overlay struct {
	kind  overlayKind
	name  string
	token *remote.Token
	guard *remote.Guard

	input      textinput.Model
	menuTarget string
	menuItems  []menuItem
	menuCursor int
}

func (m *Model) topOverlay() *overlay {
	if len(m.overlays) == 0 {
		return nil
	}
	return m.overlays[len(m.overlays)-1]
}

func (m *Model) findOverlay(kind overlayKind) *overlay {
	for _, o := range m.overlays {
		if o.kind == kind {
			return o
		}
	}
	return nil
}

// closeOverlay hides the overlay immediately but keeps its back handler
// registered until the echo window passes; the handler's guard swallows any
// echoed signal in the meantime.
func (m *Model) closeOverlay(target *overlay) {
	for i, o := range m.overlays {
		if o == target {
			m.overlays = append(m.overlays[:i], m.overlays[i+1:]...)
			break
		}
	}
	events.UI.OverlayClose(target.name)
	m.queueCmd(cleanupTick(target.token))
}

// openFilterOverlay shows the channel filter panel. The text input is a
// transient edit buffer seeded from the committed filter; enter commits it,
// back reverts it. The committed value is the only one the grid ever sees.
func (m *Model) openFilterOverlay() {
	if m.findOverlay(overlayFilter) != nil {
		return
	}
	input := textinput.New()
	input.Placeholder = "channel name"
	input.Prompt = "» "
	if styles.FilterPrompt != nil {
		input.PromptStyle = *styles.FilterPrompt
	}
	input.SetValue(m.grid.Filter())
	input.CursorEnd()
	input.Focus()

	o := &overlay{
		kind:  overlayFilter,
		name:  "filter",
		guard: remote.NewGuard(remote.BackEchoWindow),
		input: input,
	}
	o.token = m.stack.Push(o.name, remote.Guarded(o.guard, o.name, func() bool {
		events.Filter.Revert(m.grid.Filter())
		m.closeOverlay(o)
		return true
	}))
	m.overlays = append(m.overlays, o)
	events.UI.OverlayOpen(o.name)
}

func (m *Model) commitFilter(o *overlay) tea.Cmd {
	value := o.input.Value()
	m.grid.SetFilter(value)
	events.Filter.Commit(value, m.grid.TotalRows())
	// Filtering reshapes the scroll surface; cached positions are stale and
	// the viewport snaps back to the top, so the coordinator's offset must
	// follow or its threshold math would run against the pre-filter value.
	m.coordinator.InvalidateAll("filter")
	m.grid.SetScrollOffset(0)
	m.coordinator.SetMetrics(engine.Metrics{ViewportExtent: m.coordinator.Metrics().ViewportExtent})
	m.closeOverlay(o)
	if _, ok := m.grid.Current(); ok {
		return m.onFocusChanged()
	}
	return nil
}

// openMenuOverlay shows the context-action menu for the focused channel,
// raised by the distinguished long-confirm key rather than a plain select.
func (m *Model) openMenuOverlay() {
	ch, ok := m.grid.Current()
	if !ok || m.findOverlay(overlayMenu) != nil {
		return
	}
	o := &overlay{
		kind:       overlayMenu,
		name:       "menu",
		guard:      remote.NewGuard(remote.BackEchoWindow),
		menuTarget: ch.ID,
		menuItems: []menuItem{
			{id: "watch", label: "Watch now"},
			{id: "multiview", label: "Add to multiview"},
			{id: "info", label: "Channel info"},
		},
	}
	o.token = m.stack.Push(o.name, remote.Guarded(o.guard, o.name, func() bool {
		m.closeOverlay(o)
		return true
	}))
	m.overlays = append(m.overlays, o)
	events.UI.OverlayOpen(o.name)
}

func (m *Model) runMenuAction(o *overlay) tea.Cmd {
	item := o.menuItems[o.menuCursor]
	target := o.menuTarget
	m.closeOverlay(o)

	ch, ok := m.channelByID(target)
	if !ok {
		return nil
	}
	switch item.id {
	case "watch":
		return m.launchCmd([]string{ch.ID})
	case "multiview":
		cmds := make([]tea.Cmd, 0, 2)
		if m.session.State() == selection.Idle {
			if cmd := m.beginSelection(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		notice, _ := m.session.Toggle(ch.ID, ch.Name)
		if notice.Text != "" {
			cmds = append(cmds, m.setToast(notice.Text))
		}
		return tea.Batch(cmds...)
	case "info":
		return m.setToast(fmt.Sprintf("%s · channel %d · %s", ch.Name, ch.Number, ch.Genre))
	}
	return nil
}

// openConfirmOverlay raises the multiview confirmation. It pushes its own,
// higher-priority back handler: one logical feature, two independent
// interceptor lifecycles. When raised by a back press the handler's guard is
// pre-armed so the press's echo is swallowed here instead of dismissing the
// dialog it just opened.
func (m *Model) openConfirmOverlay(preArm bool) {
	if m.findOverlay(overlayConfirm) != nil {
		return
	}
	o := &overlay{
		kind:  overlayConfirm,
		name:  "confirm",
		guard: remote.NewGuard(remote.BackEchoWindow),
		menuItems: []menuItem{
			{id: "continue", label: "Continue Selecting"},
			{id: "launch", label: "Start Watching"},
			{id: "discard", label: "Discard Selection"},
		},
	}
	if preArm {
		o.guard.Begin()
		o.guard.End()
	}
	o.token = m.stack.Push(o.name, remote.Guarded(o.guard, o.name, func() bool {
		// Back on the confirmation means "keep my selection".
		m.session.ConfirmDismiss()
		m.closeOverlay(o)
		return true
	}))
	m.overlays = append(m.overlays, o)
	events.UI.OverlayOpen(o.name)
}

func (m *Model) runConfirmAction(o *overlay) tea.Cmd {
	switch o.menuItems[o.menuCursor].id {
	case "continue":
		m.session.ConfirmDismiss()
		m.closeOverlay(o)
		return nil
	case "launch":
		entries, outcome, notice := m.session.ConfirmLaunch()
		m.closeOverlay(o)
		cmds := make([]tea.Cmd, 0, 3)
		if notice.Text != "" {
			cmds = append(cmds, m.setToast(notice.Text))
		}
		if outcome == selection.OutcomeLaunch {
			m.endSelection()
			cmds = append(cmds, m.launchCmd(entryIDs(entries)))
		}
		return tea.Batch(cmds...)
	case "discard":
		notice := m.session.ConfirmCancel()
		m.closeOverlay(o)
		m.endSelection()
		return m.setToast(notice.Text)
	}
	return nil
}

// beginSelection enters multiview picking and installs the session's back
// handler. The handler never dismisses the session directly: it escalates
// into the confirmation overlay, which pushes its own handler on top.
func (m *Model) beginSelection() tea.Cmd {
	notice := m.session.Enter()
	if m.sessionToken == nil || m.sessionToken.Removed() {
		m.sessionToken = m.stack.Push("selection", func() bool {
			if m.session.State() != selection.Selecting {
				return false
			}
			m.session.RequestConfirm(selection.TriggerBack)
			m.openConfirmOverlay(true)
			return true
		})
	}
	if notice.Text != "" {
		return m.setToast(notice.Text)
	}
	return nil
}

// endSelection tears down the session's interceptor once the session has
// ended (launch or cancel). The session handler takes no side effect of its
// own, so it needs no echo window.
func (m *Model) endSelection() {
	if m.sessionToken != nil {
		m.sessionToken.Remove()
		m.sessionToken = nil
	}
}

func (m *Model) channelByID(id string) (ch catalog.Channel, ok bool) {
	for _, c := range m.lineup.Channels() {
		if c.ID == id {
			return c, true
		}
	}
	return ch, false
}

func entryIDs(entries []selection.Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
