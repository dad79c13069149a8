package remote

import (
	"time"

	"github.com/mfenwick/couchtv/internal/logging/events"
)

// GuardState enumerates the phases of a reentrancy guard.
type GuardState int

const (
	// GuardIdle means the guard will admit the next activation.
	GuardIdle GuardState = iota
	// GuardHandling means an activation is being processed right now.
	GuardHandling
	// GuardCooldown means the activation finished but its echo window is
	// still open; duplicates arriving now are swallowed.
	GuardCooldown
)

// Default guard windows. Remotes can deliver two signals for one physical
// press (press + long-press release, platform quirks); the windows are sized
// to outlast the observed echo gap.
const (
	BackEchoWindow      = 750 * time.Millisecond
	SelectReleaseWindow = 500 * time.Millisecond
)

// Guard is a per-handler reentrancy lock modelled as an explicit state
// machine (Idle -> Handling -> Cooldown -> Idle) so the windows are
// auditable and testable without the UI. The clock is injectable; the zero
// value of now falls back to time.Now.
type Guard struct {
	window   time.Duration
	state    GuardState
	deadline time.Time
	now      func() time.Time
}

// NewGuard creates a guard with the given echo window.
func NewGuard(window time.Duration) *Guard {
	return &Guard{window: window, now: time.Now}
}

// SetClock overrides the guard's time source. Test hook.
func (g *Guard) SetClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// Begin attempts to start handling an activation. It returns false when the
// guard is still inside a previous activation's window, meaning the caller
// should treat the event as a duplicate and skip its side effects.
func (g *Guard) Begin() bool {
	if g.State() != GuardIdle {
		return false
	}
	g.state = GuardHandling
	g.deadline = g.now().Add(g.window)
	return true
}

// End marks the activation's side effects as finished. The guard moves to
// Cooldown until the window armed by Begin expires.
func (g *Guard) End() {
	if g.state == GuardHandling {
		g.state = GuardCooldown
	}
}

// Release forces the guard back to Idle regardless of the window. Used when
// the owning component is torn down so a stale window cannot outlive it.
func (g *Guard) Release() {
	g.state = GuardIdle
	g.deadline = time.Time{}
}

// State reports the effective state, lazily expiring the window.
func (g *Guard) State() GuardState {
	if g.state != GuardIdle && !g.now().Before(g.deadline) {
		// Handling that overruns its window counts as expired too; the
		// handler body runs to completion on the event loop, so by the
		// time anything re-enters, overrun means the window has passed.
		g.state = GuardIdle
		g.deadline = time.Time{}
	}
	return g.state
}

// Guarded wraps h so that duplicate invocations inside the guard window are
// claimed (returning true) without re-running side effects. The first
// invocation runs h and starts the window. The owner string is only used for
// trace correlation when an echo is swallowed.
func Guarded(g *Guard, owner string, h Handler) Handler {
	return func() bool {
		if !g.Begin() {
			events.Remote.Swallowed(owner)
			return true
		}
		defer g.End()
		return h()
	}
}
