// Package engine declares the collaborator surface implemented by the
// directional-focus/remote-input engine. The interaction core only consumes
// focus events that such an engine produces and issues scroll/focus commands
// back through this interface; it never performs spatial adjacency search
// itself.
package engine

// Rect is an element's measured position relative to its scroll container.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Metrics describes the scrollable surface's current viewport.
type Metrics struct {
	Offset         float64
	ViewportExtent float64
}

// Engine is the abstract focus/scroll surface.
type Engine interface {
	// MeasureLayout resolves an element's position inside its container.
	// It may fail when the element is unmounted mid-measurement; callers
	// treat failure as "skip the correction", never as fatal.
	MeasureLayout(element, container string) (Rect, error)

	// ScrollTo moves the container's viewport to the given offset.
	// Offsets are non-negative; issuing the same offset twice must not
	// cause visible movement.
	ScrollTo(offset float64, animated bool)

	// GrabFocus imperatively moves logical focus to an element, used after
	// revealing new content or returning to a screen.
	GrabFocus(element string)
}
