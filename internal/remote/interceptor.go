package remote

import (
	"github.com/google/uuid"
	"github.com/mfenwick/couchtv/internal/logging/events"
)

// Handler receives a back signal. Returning true claims the signal and stops
// propagation to older handlers; returning false offers it to the next one.
type Handler func() bool

type entry struct {
	id      string
	owner   string
	handler Handler
}

// Stack is the process-wide interceptor stack for back signals. It is owned
// by the UI event loop: all calls happen on the same goroutine, so there is
// no locking. Call sites never touch the underlying slice directly; the only
// ways in are Push, Token.Remove and Dispatch.
type Stack struct {
	entries []*entry
}

// Token identifies a single registration. Remove is idempotent.
type Token struct {
	stack   *Stack
	entry   *entry
	removed bool
}

// NewStack creates an empty interceptor stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push installs handler as the new top of the stack. The owner string is
// only used for trace correlation. The returned token removes exactly this
// registration.
func (s *Stack) Push(owner string, handler Handler) *Token {
	e := &entry{id: uuid.NewString(), owner: owner, handler: handler}
	s.entries = append(s.entries, e)
	events.Remote.Push(e.id, e.owner, len(s.entries))
	return &Token{stack: s, entry: e}
}

// Remove unregisters the handler associated with this token. Calling Remove
// more than once is a no-op.
func (t *Token) Remove() {
	if t == nil || t.removed {
		return
	}
	t.removed = true
	s := t.stack
	for i, e := range s.entries {
		if e == t.entry {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			events.Remote.Remove(e.id, e.owner, len(s.entries))
			return
		}
	}
}

// Replace atomically swaps the registration for a refreshed handler while
// keeping its stack position. Used when a handler's captured data changes:
// the old closure is dropped and the new one takes its place, so stack
// identity stays correct while behaviour is up to date.
func (t *Token) Replace(handler Handler) {
	if t == nil || t.removed {
		return
	}
	t.entry.handler = handler
}

// Removed reports whether the token's registration is gone.
func (t *Token) Removed() bool {
	return t == nil || t.removed
}

// Dispatch offers a back signal to handlers from newest to oldest. It stops
// at the first handler that claims the signal and reports whether anybody
// did; false means default navigation should proceed.
func (s *Stack) Dispatch() bool {
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if e.handler == nil {
			continue
		}
		if e.handler() {
			events.Remote.Dispatch(e.id, e.owner, true)
			return true
		}
		events.Remote.Dispatch(e.id, e.owner, false)
	}
	events.Remote.Unclaimed(len(s.entries))
	return false
}

// Len reports the number of active registrations.
func (s *Stack) Len() int {
	return len(s.entries)
}
