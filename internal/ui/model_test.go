package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/mfenwick/couchtv/internal/catalog"
	"github.com/mfenwick/couchtv/internal/engine"
	"github.com/mfenwick/couchtv/internal/selection"
	tea "github.com/charmbracelet/bubbletea"
)

type recordedLaunch struct {
	ids []string
}

type fakeHistory struct {
	launches []recordedLaunch
}

func (f *fakeHistory) RecordLaunch(_ context.Context, ids []string) error {
	f.launches = append(f.launches, recordedLaunch{ids: ids})
	return nil
}

func newTestModel() (*Model, *fakeHistory) {
	history := &fakeHistory{}
	m := NewModel(Options{
		Height:   24,
		History:  history,
		Channels: catalog.DefaultLineup(),
	})
	return m, history
}

func keyFor(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, s string) tea.Cmd {
	_, cmd := m.Update(keyFor(s))
	return cmd
}

func TestBackDuringSelectionEscalatesWithoutLoss(t *testing.T) {
	m, _ := newTestModel()

	press(m, "v")
	if m.session.State() != selection.Selecting {
		t.Fatalf("expected selecting after v, got %v", m.session.State())
	}
	if m.stack.Len() != 1 {
		t.Fatalf("expected session back handler registered, got depth %d", m.stack.Len())
	}

	press(m, "enter")
	press(m, "right")
	press(m, "enter")
	if m.session.Count() != 2 {
		t.Fatalf("expected 2 picked channels, got %d", m.session.Count())
	}

	press(m, "esc")
	if m.session.State() != selection.ConfirmPending {
		t.Fatalf("expected confirmation pending after back, got %v", m.session.State())
	}
	if m.session.Count() != 2 {
		t.Fatalf("expected entries retained through escalation, got %d", m.session.Count())
	}
	if m.stack.Len() != 2 {
		t.Fatalf("expected confirm handler stacked above session handler, got depth %d", m.stack.Len())
	}
	if m.findOverlay(overlayConfirm) == nil {
		t.Fatalf("expected confirmation overlay open")
	}
}

func TestEchoedBackDoesNotDismissConfirmation(t *testing.T) {
	m, _ := newTestModel()

	press(m, "v")
	press(m, "enter")
	press(m, "right")
	press(m, "enter")
	press(m, "esc")

	// The press that opened the confirmation echoes; the pre-armed guard
	// swallows it instead of dismissing the dialog it just raised.
	press(m, "esc")
	if m.session.State() != selection.ConfirmPending {
		t.Fatalf("expected confirmation to survive the echo, got %v", m.session.State())
	}
	if m.findOverlay(overlayConfirm) == nil {
		t.Fatalf("expected confirmation overlay still open")
	}
}

func TestConfirmContinueKeepsIdenticalSelection(t *testing.T) {
	m, _ := newTestModel()

	press(m, "v")
	press(m, "enter")
	press(m, "right")
	press(m, "enter")
	before := m.session.Entries()

	press(m, "esc")
	// Cursor starts on "Continue Selecting".
	press(m, "enter")

	if m.session.State() != selection.Selecting {
		t.Fatalf("expected to resume selecting, got %v", m.session.State())
	}
	after := m.session.Entries()
	if len(after) != len(before) {
		t.Fatalf("expected identical entry set, got %d vs %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("entry %d changed across dismissal: %v vs %v", i, before[i], after[i])
		}
	}
	if m.findOverlay(overlayConfirm) != nil {
		t.Fatalf("expected confirmation overlay closed")
	}
}

func TestConfirmDiscardEndsSession(t *testing.T) {
	m, _ := newTestModel()

	press(m, "v")
	press(m, "enter")
	press(m, "right")
	press(m, "enter")
	press(m, "esc")
	press(m, "down")
	press(m, "down")
	press(m, "enter")

	if m.session.State() != selection.Idle {
		t.Fatalf("expected idle after discard, got %v", m.session.State())
	}
	if m.sessionToken != nil {
		t.Fatalf("expected session handler torn down")
	}
}

func TestDuplicateSelectPressIsDropped(t *testing.T) {
	m, _ := newTestModel()

	if cmd := m.handleSelectPress(); cmd == nil {
		t.Fatalf("expected first press to launch")
	}
	if cmd := m.handleSelectPress(); cmd != nil {
		t.Fatalf("expected duplicate press on same channel to be dropped")
	}

	// A different channel is a new activation, not an echo.
	m.grid.MoveRight()
	if cmd := m.handleSelectPress(); cmd == nil {
		t.Fatalf("expected press on new channel to be admitted")
	}
}

func TestUnclaimedBackQuits(t *testing.T) {
	m, _ := newTestModel()

	cmd := press(m, "esc")
	if cmd == nil {
		t.Fatalf("expected quit command for unclaimed back")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg, got %T", cmd())
	}
}

func TestOverlayHandlerRemovedAfterEchoWindow(t *testing.T) {
	m, _ := newTestModel()

	press(m, "/")
	o := m.findOverlay(overlayFilter)
	if o == nil {
		t.Fatalf("expected filter overlay open")
	}
	token := o.token

	press(m, "esc")
	if m.findOverlay(overlayFilter) != nil {
		t.Fatalf("expected overlay hidden immediately")
	}
	if token.Removed() {
		t.Fatalf("expected handler to outlive the overlay by the echo window")
	}

	// The echoed press lands on the lingering handler, not on default quit.
	if cmd := press(m, "esc"); cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatalf("echoed back fell through to quit")
		}
	}

	m.Update(interceptorCleanupMsg{token: token})
	if !token.Removed() {
		t.Fatalf("expected cleanup message to remove the handler")
	}
	if m.stack.Len() != 0 {
		t.Fatalf("expected empty stack, got depth %d", m.stack.Len())
	}
}

func TestFilterCommitRebuildsGrid(t *testing.T) {
	m, _ := newTestModel()

	press(m, "/")
	for _, r := range "bbc" {
		press(m, string(r))
	}
	press(m, "enter")

	if m.grid.Filter() != "bbc" {
		t.Fatalf("expected committed filter, got %q", m.grid.Filter())
	}
	if m.grid.TotalRows() != 1 {
		t.Fatalf("expected filtered grid, got %d rows", m.grid.TotalRows())
	}
	if m.findOverlay(overlayFilter) != nil {
		t.Fatalf("expected filter overlay closed on commit")
	}
}

func TestBackspaceEditsFilterBuffer(t *testing.T) {
	m, _ := newTestModel()

	press(m, "/")
	for _, r := range "bbcc" {
		press(m, string(r))
	}
	press(m, "backspace")

	o := m.findOverlay(overlayFilter)
	if o == nil {
		t.Fatalf("backspace dismissed the filter overlay instead of editing the buffer")
	}
	if o.input.Value() != "bbc" {
		t.Fatalf("expected backspace to delete a character, got %q", o.input.Value())
	}

	press(m, "enter")
	if m.grid.Filter() != "bbc" {
		t.Fatalf("expected corrected filter committed, got %q", m.grid.Filter())
	}
}

func TestFilterCommitResetsScrollMetrics(t *testing.T) {
	m, _ := newTestModel()
	extent := m.coordinator.Metrics().ViewportExtent
	m.coordinator.SetMetrics(engine.Metrics{Offset: 240, ViewportExtent: extent})
	m.grid.SetScrollOffset(240)

	press(m, "/")
	for _, r := range "bbc" {
		press(m, string(r))
	}
	press(m, "enter")

	if got := m.coordinator.Metrics().Offset; got != 0 {
		t.Fatalf("expected coordinator offset reset with the viewport, got %v", got)
	}
	if got := m.grid.ScrollOffset(); got != 0 {
		t.Fatalf("expected grid scrolled to top, got %v", got)
	}
}

func TestFilterRevertDiscardsEdits(t *testing.T) {
	m, _ := newTestModel()

	press(m, "/")
	for _, r := range "espn" {
		press(m, string(r))
	}
	press(m, "esc")

	if m.grid.Filter() != "" {
		t.Fatalf("expected filter untouched after revert, got %q", m.grid.Filter())
	}
	if m.grid.TotalRows() == 1 {
		t.Fatalf("expected grid not filtered")
	}
}

func TestFocusSettleIgnoresStaleSequence(t *testing.T) {
	m, _ := newTestModel()

	if cmd := press(m, "down"); cmd == nil {
		t.Fatalf("expected debounce ticks scheduled on focus change")
	}
	m.Update(focusSettledMsg{seq: 0})
	if m.highlighted != "" {
		t.Fatalf("expected stale settle ignored, got %q", m.highlighted)
	}

	m.Update(focusSettledMsg{seq: 1})
	ch, _ := m.grid.Current()
	if m.highlighted != ch.Key() {
		t.Fatalf("expected highlight on %s, got %q", ch.Key(), m.highlighted)
	}
}

func TestCommitSelectionEndsSession(t *testing.T) {
	m, _ := newTestModel()

	press(m, "v")
	press(m, "enter")
	press(m, "right")
	press(m, "enter")
	if cmd := press(m, "x"); cmd == nil {
		t.Fatalf("expected launch command from commit")
	}
	if m.session.State() != selection.Idle {
		t.Fatalf("expected session ended by commit, got %v", m.session.State())
	}
	if m.sessionToken != nil {
		t.Fatalf("expected session handler torn down on commit")
	}
}

func TestCommitWithSingleEntryIsRejected(t *testing.T) {
	m, _ := newTestModel()

	press(m, "v")
	press(m, "enter")
	press(m, "x")
	if m.session.State() != selection.Selecting {
		t.Fatalf("expected session to stay selecting below the launch minimum, got %v", m.session.State())
	}
	if m.session.Count() != 1 {
		t.Fatalf("expected entry retained, got %d", m.session.Count())
	}
}

func TestLaunchRecordsHistory(t *testing.T) {
	m, history := newTestModel()

	cmd := m.launchCmd([]string{"cnn", "bbc"})
	msg := cmd()
	m.Update(msg)

	if len(history.launches) != 1 {
		t.Fatalf("expected one recorded launch, got %d", len(history.launches))
	}
	if len(history.launches[0].ids) != 2 {
		t.Fatalf("expected 2 channels launched, got %v", history.launches[0].ids)
	}
	if !strings.Contains(m.toast, "Now watching 2 channels") {
		t.Fatalf("expected launch toast, got %q", m.toast)
	}
}

func TestViewShowsOrdinalBadges(t *testing.T) {
	m, _ := newTestModel()

	press(m, "v")
	press(m, "enter")
	out := m.View()
	if !strings.Contains(out, "#1") {
		t.Fatalf("expected ordinal badge in view:\n%s", out)
	}
	if !strings.Contains(out, "multiview 1/5") {
		t.Fatalf("expected multiview status in header:\n%s", out)
	}
}
