// Package testutil provides recording fakes for the external collaborator
// surfaces used across the interaction core's tests.
package testutil

import (
	"fmt"

	"github.com/mfenwick/couchtv/internal/engine"
)

// FakeEngine records every call made through the engine surface so tests can
// assert exactly which measurements and scroll commands were issued.
type FakeEngine struct {
	Rects        map[string]engine.Rect
	MeasureErrs  map[string]error
	MeasureCalls []string
	Scrolls      []float64
	Grabs        []string
}

// NewFakeEngine creates an engine with no known elements.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{
		Rects:       make(map[string]engine.Rect),
		MeasureErrs: make(map[string]error),
	}
}

// MeasureLayout resolves an element from the configured rects.
func (f *FakeEngine) MeasureLayout(element, container string) (engine.Rect, error) {
	f.MeasureCalls = append(f.MeasureCalls, element)
	if err, ok := f.MeasureErrs[element]; ok {
		return engine.Rect{}, err
	}
	rect, ok := f.Rects[element]
	if !ok {
		return engine.Rect{}, fmt.Errorf("element %s not mounted in %s", element, container)
	}
	return rect, nil
}

// ScrollTo records the issued offset.
func (f *FakeEngine) ScrollTo(offset float64, animated bool) {
	f.Scrolls = append(f.Scrolls, offset)
}

// GrabFocus records the focus request.
func (f *FakeEngine) GrabFocus(element string) {
	f.Grabs = append(f.Grabs, element)
}
