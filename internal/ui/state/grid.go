// Package state holds the channel grid's navigation state: cursor position,
// progressive row reveal, filter, and the virtual scroll offset driven by the
// focus coordinator.
package state

import (
	"strings"

	"github.com/mfenwick/couchtv/internal/catalog"
)

// RowHeight is the virtual height of one genre row in the scroll surface's
// coordinate space. The focus coordinator's thresholds are expressed in the
// same units.
const RowHeight = 120.0

const (
	// initialRendered is how many rows the grid renders up front; the rest
	// are revealed progressively as focus approaches the boundary.
	initialRendered = 8
	// revealBatch is how many extra rows one prefetch reveals.
	revealBatch = 4
)

// Grid is the navigable channel grid.
type Grid struct {
	full   []catalog.Channel
	rows   []catalog.Row
	filter string

	cursorRow int
	cursorCol int
	rendered  int

	scrollOffset float64
}

// NewGrid creates a grid over the given lineup.
func NewGrid(channels []catalog.Channel) *Grid {
	g := &Grid{}
	g.SetChannels(channels)
	return g
}

// SetChannels replaces the lineup, reapplying the filter and keeping the
// cursor on the same channel when it survives the refresh.
func (g *Grid) SetChannels(channels []catalog.Channel) {
	var keep string
	if ch, ok := g.Current(); ok {
		keep = ch.ID
	}
	g.full = make([]catalog.Channel, len(channels))
	copy(g.full, channels)
	g.rebuild()
	if keep != "" && !g.FocusChannel(keep) {
		g.clampCursor()
	}
}

// SetFilter applies a committed filter query and rebuilds the rows.
func (g *Grid) SetFilter(query string) {
	g.filter = strings.TrimSpace(query)
	g.rebuild()
	g.cursorRow = 0
	g.cursorCol = 0
	g.clampCursor()
}

// Filter returns the committed filter value.
func (g *Grid) Filter() string {
	return g.filter
}

func (g *Grid) rebuild() {
	g.rows = catalog.BuildRows(FilterChannels(g.full, g.filter))
	g.rendered = initialRendered
	if g.rendered > len(g.rows) {
		g.rendered = len(g.rows)
	}
	g.clampCursor()
}

func (g *Grid) clampCursor() {
	if len(g.rows) == 0 {
		g.cursorRow = 0
		g.cursorCol = 0
		return
	}
	if g.cursorRow >= len(g.rows) {
		g.cursorRow = len(g.rows) - 1
	}
	if g.cursorRow < 0 {
		g.cursorRow = 0
	}
	row := g.rows[g.cursorRow]
	if g.cursorCol >= len(row.Channels) {
		g.cursorCol = len(row.Channels) - 1
	}
	if g.cursorCol < 0 {
		g.cursorCol = 0
	}
	if g.cursorRow >= g.rendered {
		g.rendered = g.cursorRow + 1
	}
}

// Rows returns the rendered prefix of the (filtered) rows.
func (g *Grid) Rows() []catalog.Row {
	return g.rows[:g.rendered]
}

// TotalRows is the full filtered row count; RenderedRows how many are
// currently revealed.
func (g *Grid) TotalRows() int {
	return len(g.rows)
}

func (g *Grid) RenderedRows() int {
	return g.rendered
}

// RevealMore renders the next batch of rows. Called when focus nears the
// rendered boundary so navigation never outruns content.
func (g *Grid) RevealMore() {
	g.rendered += revealBatch
	if g.rendered > len(g.rows) {
		g.rendered = len(g.rows)
	}
}

// CursorRow and CursorCol report the focused tile position.
func (g *Grid) CursorRow() int { return g.cursorRow }

func (g *Grid) CursorCol() int { return g.cursorCol }

// Current returns the focused channel.
func (g *Grid) Current() (catalog.Channel, bool) {
	if g.cursorRow < 0 || g.cursorRow >= len(g.rows) {
		return catalog.Channel{}, false
	}
	row := g.rows[g.cursorRow]
	if g.cursorCol < 0 || g.cursorCol >= len(row.Channels) {
		return catalog.Channel{}, false
	}
	return row.Channels[g.cursorCol], true
}

// MoveUp, MoveDown, MoveLeft and MoveRight shift the cursor one tile. They
// report whether focus changed. Vertical moves clamp the column to the new
// row's width; the grid never wraps.
func (g *Grid) MoveUp() bool {
	if g.cursorRow <= 0 {
		return false
	}
	g.cursorRow--
	g.clampCursor()
	return true
}

func (g *Grid) MoveDown() bool {
	if g.cursorRow >= len(g.rows)-1 {
		return false
	}
	g.cursorRow++
	g.clampCursor()
	return true
}

func (g *Grid) MoveLeft() bool {
	if g.cursorCol <= 0 {
		return false
	}
	g.cursorCol--
	return true
}

func (g *Grid) MoveRight() bool {
	if g.cursorRow >= len(g.rows) {
		return false
	}
	if g.cursorCol >= len(g.rows[g.cursorRow].Channels)-1 {
		return false
	}
	g.cursorCol++
	return true
}

// FocusChannel moves the cursor to the channel with the given id, revealing
// its row if necessary. Reports whether the channel was found.
func (g *Grid) FocusChannel(id string) bool {
	for r, row := range g.rows {
		for c, ch := range row.Channels {
			if ch.ID == id {
				g.cursorRow = r
				g.cursorCol = c
				g.clampCursor()
				return true
			}
		}
	}
	return false
}

// RowIndexOf returns the rendered row index of a channel, or -1 when the
// channel is filtered out or not yet revealed (i.e. not mounted).
func (g *Grid) RowIndexOf(id string) int {
	for r := 0; r < g.rendered; r++ {
		for _, ch := range g.rows[r].Channels {
			if ch.ID == id {
				return r
			}
		}
	}
	return -1
}

// ScrollOffset is the viewport's virtual offset, owned by the scroll engine.
func (g *Grid) ScrollOffset() float64 {
	return g.scrollOffset
}

func (g *Grid) SetScrollOffset(offset float64) {
	if offset < 0 {
		offset = 0
	}
	g.scrollOffset = offset
}
