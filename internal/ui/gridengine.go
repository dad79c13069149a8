package ui

import (
	"fmt"
	"strings"

	"github.com/mfenwick/couchtv/internal/engine"
	uistate "github.com/mfenwick/couchtv/internal/ui/state"
)

// gridEngine implements the focus/scroll engine surface on top of the grid's
// virtual geometry: each genre row occupies RowHeight units of a vertical
// scroll space. The coordinator stays oblivious to how elements are laid out.
type gridEngine struct {
	grid *uistate.Grid
}

func channelID(element string) string {
	return strings.TrimPrefix(element, "channel:")
}

func (e *gridEngine) MeasureLayout(element, container string) (engine.Rect, error) {
	row := e.grid.RowIndexOf(channelID(element))
	if row < 0 {
		return engine.Rect{}, fmt.Errorf("element %s not mounted in %s", element, container)
	}
	return engine.Rect{
		Y:      float64(row) * uistate.RowHeight,
		Height: uistate.RowHeight,
	}, nil
}

func (e *gridEngine) ScrollTo(offset float64, animated bool) {
	e.grid.SetScrollOffset(offset)
}

func (e *gridEngine) GrabFocus(element string) {
	e.grid.FocusChannel(channelID(element))
}
