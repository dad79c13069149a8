// Package selection models the bounded multiview picking workflow: up to
// five channels chosen in order for simultaneous playback, with a guarded
// commit/cancel protocol and back-press escalation into a confirmation step
// instead of silent loss of the selection.
package selection

import (
	"fmt"

	"github.com/mfenwick/couchtv/internal/logging/events"
)

// MaxEntries is the hard cap on simultaneous playback channels.
const MaxEntries = 5

// MinLaunch is the smallest selection that makes a multiview launch
// meaningful.
const MinLaunch = 2

// State enumerates the session phases.
type State int

const (
	// Idle means no selection session is active.
	Idle State = iota
	// Selecting means the user is picking channels.
	Selecting
	// ConfirmPending means a back-press (or explicit request) escalated
	// into a confirmation step; entries are retained until the user
	// decides.
	ConfirmPending
)

// Trigger records what raised the confirmation step.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerBack
)

// Entry is one picked channel. Ordinal is the 1-based selection rank,
// surfaced to the user as "#2 of 5"; ordinals are dense and renumbered when
// an earlier entry is removed.
type Entry struct {
	ID      string
	Ordinal int
	Label   string
}

// Notice is an advisory, toast-style message produced by a transition. It
// never blocks the transition itself.
type Notice struct {
	Text string
}

// Outcome describes where a commit or confirmation left the session.
type Outcome int

const (
	// OutcomeNone means the session state did not change.
	OutcomeNone Outcome = iota
	// OutcomeLaunch means the entries were handed to the caller for
	// playback and the session ended.
	OutcomeLaunch
	// OutcomeCancelled means the session ended with entries discarded.
	OutcomeCancelled
)

// Session is the finite-state model for the picking workflow. Like the rest
// of the interaction core it is owned by the UI event loop; no locking.
type Session struct {
	state   State
	entries []Entry
	trigger Trigger
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{state: Idle}
}

// State reports the current phase.
func (s *Session) State() State {
	return s.state
}

// Trigger reports what raised the pending confirmation, if any.
func (s *Session) Trigger() Trigger {
	return s.trigger
}

// Entries returns a copy of the current selection in ordinal order.
func (s *Session) Entries() []Entry {
	if len(s.entries) == 0 {
		return nil
	}
	dup := make([]Entry, len(s.entries))
	copy(dup, s.entries)
	return dup
}

// Count reports the number of picked channels.
func (s *Session) Count() int {
	return len(s.entries)
}

// Contains reports whether the channel is already picked, and its ordinal.
func (s *Session) Contains(id string) (int, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e.Ordinal, true
		}
	}
	return 0, false
}

// Enter starts a selection session. A no-op when one is already active.
func (s *Session) Enter() Notice {
	if s.state != Idle {
		return Notice{}
	}
	s.state = Selecting
	s.entries = nil
	s.trigger = TriggerNone
	events.Selection.Enter()
	return Notice{Text: fmt.Sprintf("Pick up to %d channels to watch together", MaxEntries)}
}

// Toggle adds or removes a channel. Removal renumbers every later entry so
// ordinals stay dense. Adding past the cap is rejected with no state change.
func (s *Session) Toggle(id, label string) (Notice, bool) {
	if s.state != Selecting {
		return Notice{}, false
	}
	for i, e := range s.entries {
		if e.ID != id {
			continue
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		for j := i; j < len(s.entries); j++ {
			s.entries[j].Ordinal = j + 1
		}
		events.Selection.Toggle(id, 0, len(s.entries), false)
		return Notice{Text: fmt.Sprintf("%s removed (%d selected)", label, len(s.entries))}, true
	}
	if len(s.entries) >= MaxEntries {
		events.Selection.CapReached(id)
		return Notice{Text: fmt.Sprintf("Maximum of %d channels reached", MaxEntries)}, false
	}
	entry := Entry{ID: id, Ordinal: len(s.entries) + 1, Label: label}
	s.entries = append(s.entries, entry)
	events.Selection.Toggle(id, entry.Ordinal, len(s.entries), true)
	return Notice{Text: fmt.Sprintf("%s is #%d of %d", label, entry.Ordinal, MaxEntries)}, true
}

// Commit is the explicit launch action. Two or more entries launch; exactly
// one is rejected with an advisory; zero cancels straight to Idle.
func (s *Session) Commit() ([]Entry, Outcome, Notice) {
	if s.state != Selecting {
		return nil, OutcomeNone, Notice{}
	}
	switch {
	case len(s.entries) >= MinLaunch:
		entries := s.Entries()
		s.reset()
		events.Selection.End("launch", len(entries))
		return entries, OutcomeLaunch, Notice{Text: fmt.Sprintf("Starting %d channels", len(entries))}
	case len(s.entries) == 1:
		return nil, OutcomeNone, Notice{Text: fmt.Sprintf("Select at least %d channels", MinLaunch)}
	default:
		s.reset()
		events.Selection.End("empty", 0)
		return nil, OutcomeCancelled, Notice{Text: "Selection cancelled"}
	}
}

// RequestConfirm escalates a back-press into the confirmation step. Entries
// are untouched.
func (s *Session) RequestConfirm(trigger Trigger) bool {
	if s.state != Selecting {
		return false
	}
	s.state = ConfirmPending
	s.trigger = trigger
	events.Selection.Confirm(triggerName(trigger), len(s.entries))
	return true
}

// ConfirmCancel ends the session from the confirmation step, discarding all
// entries.
func (s *Session) ConfirmCancel() Notice {
	if s.state != ConfirmPending {
		return Notice{}
	}
	n := len(s.entries)
	s.reset()
	events.Selection.End("cancel", n)
	return Notice{Text: "Selection discarded"}
}

// ConfirmLaunch launches from the confirmation step. Only reachable with two
// or more entries; fewer fall back to dismissal so nothing is lost.
func (s *Session) ConfirmLaunch() ([]Entry, Outcome, Notice) {
	if s.state != ConfirmPending {
		return nil, OutcomeNone, Notice{}
	}
	if len(s.entries) < MinLaunch {
		s.ConfirmDismiss()
		return nil, OutcomeNone, Notice{Text: fmt.Sprintf("Select at least %d channels", MinLaunch)}
	}
	entries := s.Entries()
	s.reset()
	events.Selection.End("launch", len(entries))
	return entries, OutcomeLaunch, Notice{Text: fmt.Sprintf("Starting %d channels", len(entries))}
}

// ConfirmDismiss returns to Selecting with the identical entry set. "Continue
// selecting": no data loss.
func (s *Session) ConfirmDismiss() bool {
	if s.state != ConfirmPending {
		return false
	}
	s.state = Selecting
	s.trigger = TriggerNone
	return true
}

func (s *Session) reset() {
	s.state = Idle
	s.entries = nil
	s.trigger = TriggerNone
}

func triggerName(t Trigger) string {
	if t == TriggerBack {
		return "back"
	}
	return "none"
}
