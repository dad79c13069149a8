// Package focus keeps the viewport scrolled to whatever element currently
// holds logical focus. It reacts to focus events from the input engine,
// coalesces bursts of rapid traversal, and issues minimal scroll corrections
// using cached element positions to avoid re-measurement.
package focus

import (
	"time"

	"github.com/mfenwick/couchtv/internal/engine"
	"github.com/mfenwick/couchtv/internal/logging/events"
)

const (
	// SettleDelay is how long focus must rest on an element before
	// dependent UI (the "now highlighted" info) is updated. Holding a
	// direction key traverses many elements; only the one focus settles
	// on is reflected downstream.
	SettleDelay = 100 * time.Millisecond

	// ScrollCoalesce batches a burst of focus events into a single
	// measurement/scroll pass. One frame: scrolling stays responsive.
	ScrollCoalesce = 16 * time.Millisecond

	// TopThreshold and BottomThreshold are the margins the focused
	// element must clear from the viewport edges before a correction is
	// issued.
	TopThreshold    = 80.0
	BottomThreshold = 80.0

	// PrefetchMargin is how close (in rows) focus may get to the rendered
	// boundary before the next batch of rows must be revealed.
	PrefetchMargin = 3

	// maxMeasureAttempts caps consecutive measurement failures per
	// element. Past the cap the correction is skipped until the next
	// cache invalidation, so a permanently unresolvable element cannot
	// keep a measurement loop hot.
	maxMeasureAttempts = 3
)

// Plan tells the caller which timers to (re)start for a focus event. The
// coordinator itself is synchronous; the event loop owns the timers and
// reports back with the sequence numbers, which go stale whenever a newer
// focus event bumps them.
type Plan struct {
	SettleSeq int
	ScrollSeq int
	// PrefetchFrom is the first unrendered row to reveal, or -1 when focus
	// is comfortably inside the rendered region.
	PrefetchFrom int
}

// Coordinator owns the position cache and the pending focus state for one
// scrollable container. It is single-threaded like the rest of the
// interaction core.
type Coordinator struct {
	eng       engine.Engine
	container string

	metrics  engine.Metrics
	cache    map[string]float64
	failures map[string]int

	settleSeq      int
	scrollSeq      int
	pendingElement string
	pendingRow     int
}

// NewCoordinator creates a coordinator scrolling the given container.
func NewCoordinator(eng engine.Engine, container string) *Coordinator {
	return &Coordinator{
		eng:       eng,
		container: container,
		cache:     make(map[string]float64),
		failures:  make(map[string]int),
	}
}

// SetMetrics records the viewport's current offset and extent, as reported
// by layout/scroll callbacks. A changed extent is a layout-affecting event
// and clears the position cache; plain offset updates do not.
func (c *Coordinator) SetMetrics(m engine.Metrics) {
	if c.metrics.ViewportExtent != 0 && m.ViewportExtent != c.metrics.ViewportExtent {
		c.InvalidateAll("resize")
	}
	c.metrics = m
}

// Metrics returns the viewport metrics last recorded.
func (c *Coordinator) Metrics() engine.Metrics {
	return c.metrics
}

// OnFocus is called every time logical focus lands on an element. It bumps
// both debounce sequences (implicitly cancelling any pending ones) and
// decides whether the caller must reveal more rows before the scroll lands.
func (c *Coordinator) OnFocus(element string, row, renderedRows, totalRows int) Plan {
	c.pendingElement = element
	c.pendingRow = row
	c.settleSeq++
	c.scrollSeq++
	events.Focus.Landed(element, row)

	prefetch := -1
	if renderedRows < totalRows && row >= renderedRows-PrefetchMargin {
		prefetch = renderedRows
		events.Focus.Prefetch(renderedRows)
	}
	return Plan{SettleSeq: c.settleSeq, ScrollSeq: c.scrollSeq, PrefetchFrom: prefetch}
}

// Settle reports whether the given settle sequence is still current and, if
// so, which element focus has settled on. Stale sequences (superseded by a
// newer focus event) are ignored.
func (c *Coordinator) Settle(seq int) (string, bool) {
	if seq != c.settleSeq || c.pendingElement == "" {
		return "", false
	}
	events.Focus.Settled(c.pendingElement)
	return c.pendingElement, true
}

// FlushScroll performs the coalesced scroll pass for the given sequence.
// Stale sequences are ignored so only the last focus event in a burst
// triggers measurement.
func (c *Coordinator) FlushScroll(seq int) bool {
	if seq != c.scrollSeq || c.pendingElement == "" {
		return false
	}
	c.ScrollToElement(c.pendingElement)
	return true
}

// ScrollToElement computes and applies the minimal scroll needed to keep the
// element visible. Cached positions are applied directly with no
// measurement; misses measure once and cache the result. Measurement
// failures skip the correction silently.
func (c *Coordinator) ScrollToElement(element string) {
	if target, ok := c.cache[element]; ok {
		c.issue(element, target, true)
		return
	}
	if c.failures[element] >= maxMeasureAttempts {
		return
	}
	rect, err := c.eng.MeasureLayout(element, c.container)
	if err != nil {
		c.failures[element]++
		events.Focus.MeasureFailed(element, c.failures[element], err)
		return
	}
	delete(c.failures, element)
	target := c.targetFor(rect)
	c.cache[element] = target
	c.issue(element, target, false)
}

// targetFor applies the edge thresholds to a measured rect. When the element
// already sits clear of both thresholds the current offset is returned, so
// issuing it is a no-op.
func (c *Coordinator) targetFor(rect engine.Rect) float64 {
	target := c.metrics.Offset
	top := rect.Y - c.metrics.Offset
	bottom := top + rect.Height
	switch {
	case top < TopThreshold:
		target = rect.Y - TopThreshold
	case bottom > c.metrics.ViewportExtent-BottomThreshold:
		target = rect.Y + rect.Height - c.metrics.ViewportExtent + BottomThreshold
	}
	if target < 0 {
		target = 0
	}
	return target
}

// issue applies a scroll target. Targets equal to the current offset are
// dropped, which both implements "otherwise no scroll" and makes repeated
// identical targets jitter-free.
func (c *Coordinator) issue(element string, target float64, cached bool) {
	if target < 0 {
		target = 0
	}
	if target == c.metrics.Offset {
		return
	}
	c.eng.ScrollTo(target, true)
	c.metrics.Offset = target
	events.Focus.ScrollIssued(element, target, cached)
}

// CachedOffset exposes the cache for tests and for restoring focus when a
// screen comes back.
func (c *Coordinator) CachedOffset(element string) (float64, bool) {
	target, ok := c.cache[element]
	return target, ok
}

// InvalidateAll clears the whole position cache. Called when the scrollable
// content's size changes or the screen regains focus, since content may have
// reflowed while hidden. Plain data refreshes must not call this: every
// invalidation forces an expensive re-measurement on next access.
func (c *Coordinator) InvalidateAll(reason string) {
	dropped := len(c.cache)
	c.cache = make(map[string]float64)
	c.failures = make(map[string]int)
	events.Focus.CacheInvalidated(reason, dropped)
}

// GrabFocus asks the engine to move logical focus to an element, e.g. after
// revealing new content or returning to the screen.
func (c *Coordinator) GrabFocus(element string) {
	c.eng.GrabFocus(element)
}
