package ui

import (
	"github.com/mfenwick/couchtv/internal/logging/events"
	"github.com/mfenwick/couchtv/internal/selection"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes remote input. The topmost overlay sees keys first; the
// back keys always go through the interceptor stack so whichever handler is
// newest decides what one press means.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.dispatchBack()
	case "backspace":
		// Backspace doubles as a back signal, except inside the filter's
		// edit buffer where it deletes a character.
		if top := m.topOverlay(); top != nil && top.kind == overlayFilter {
			return m.handleFilterKey(top, key)
		}
		return m.dispatchBack()
	}

	if top := m.topOverlay(); top != nil {
		return m.handleOverlayKey(top, key)
	}
	return m.handleGridKey(key)
}

func (m *Model) handleGridKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.grid.MoveUp() {
			return m.onFocusChanged()
		}
	case "down", "j":
		if m.grid.MoveDown() {
			return m.onFocusChanged()
		}
	case "left", "h":
		if m.grid.MoveLeft() {
			return m.onFocusChanged()
		}
	case "right", "l":
		if m.grid.MoveRight() {
			return m.onFocusChanged()
		}
	case "enter":
		return m.handleSelectPress()
	case " ", "tab":
		return m.toggleCurrent()
	case "v":
		if m.session.State() == selection.Idle {
			return m.beginSelection()
		}
	case "x":
		return m.commitSelection()
	case "/":
		m.openFilterOverlay()
	case "c":
		m.openMenuOverlay()
	}
	return nil
}

// handleSelectPress is the confirm-press path. While a selection session is
// active it toggles the focused channel; otherwise it launches it alone.
// Duplicate activations for one physical press are dropped by the guard.
func (m *Model) handleSelectPress() tea.Cmd {
	ch, ok := m.grid.Current()
	if !ok {
		return nil
	}
	if !m.admitSelect(ch.Key()) {
		return nil
	}
	if m.session.State() == selection.Selecting {
		notice, _ := m.session.Toggle(ch.ID, ch.Name)
		if notice.Text != "" {
			return m.setToast(notice.Text)
		}
		return nil
	}
	return m.launchCmd([]string{ch.ID})
}

func (m *Model) toggleCurrent() tea.Cmd {
	if m.session.State() != selection.Selecting {
		return nil
	}
	ch, ok := m.grid.Current()
	if !ok {
		return nil
	}
	notice, _ := m.session.Toggle(ch.ID, ch.Name)
	if notice.Text != "" {
		return m.setToast(notice.Text)
	}
	return nil
}

// commitSelection is the explicit launch action while selecting. A pending
// confirmation overlay owns the decision instead.
func (m *Model) commitSelection() tea.Cmd {
	if m.session.State() != selection.Selecting {
		return nil
	}
	entries, outcome, notice := m.session.Commit()
	cmds := make([]tea.Cmd, 0, 2)
	if notice.Text != "" {
		cmds = append(cmds, m.setToast(notice.Text))
	}
	switch outcome {
	case selection.OutcomeLaunch:
		m.endSelection()
		cmds = append(cmds, m.launchCmd(entryIDs(entries)))
	case selection.OutcomeCancelled:
		m.endSelection()
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleOverlayKey(o *overlay, key tea.KeyMsg) tea.Cmd {
	switch o.kind {
	case overlayFilter:
		return m.handleFilterKey(o, key)
	case overlayMenu:
		if done := m.handleListKey(o, key); done {
			return m.runMenuAction(o)
		}
	case overlayConfirm:
		if done := m.handleListKey(o, key); done {
			return m.runConfirmAction(o)
		}
	}
	return nil
}

func (m *Model) handleFilterKey(o *overlay, key tea.KeyMsg) tea.Cmd {
	if key.String() == "enter" {
		return m.commitFilter(o)
	}
	var cmd tea.Cmd
	o.input, cmd = o.input.Update(key)
	events.Filter.Edit(o.input.Value())
	return cmd
}

// handleListKey moves the cursor in a menu-style overlay. It reports whether
// the focused item was activated.
func (m *Model) handleListKey(o *overlay, key tea.KeyMsg) bool {
	switch key.String() {
	case "up", "k":
		if o.menuCursor > 0 {
			o.menuCursor--
		}
	case "down", "j":
		if o.menuCursor < len(o.menuItems)-1 {
			o.menuCursor++
		}
	case "enter":
		return true
	}
	return false
}
