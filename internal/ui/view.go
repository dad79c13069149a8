package ui

import (
	"fmt"
	"strings"

	"github.com/mfenwick/couchtv/internal/catalog"
	"github.com/mfenwick/couchtv/internal/selection"
	uistate "github.com/mfenwick/couchtv/internal/ui/state"
)

// View renders the channel grid with whatever overlay is on top. Only the
// viewport window of rows is drawn; the window position comes from the
// virtual scroll offset the coordinator maintains.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	first := int(m.grid.ScrollOffset() / uistate.RowHeight)
	rows := m.grid.Rows()
	if first > len(rows) {
		first = len(rows)
	}
	last := first + m.maxVisibleRows()
	if last > len(rows) {
		last = len(rows)
	}
	for _, row := range rows[first:last] {
		b.WriteString(m.renderRow(row))
	}
	if len(rows) == 0 {
		b.WriteString(styles.Info.Render("No channels match the current filter") + "\n")
	}

	if m.verbose && m.highlighted != "" {
		if ch, ok := m.channelByID(channelID(m.highlighted)); ok {
			b.WriteString("\n" + styles.Info.Render(
				fmt.Sprintf("Focused: %s · channel %d · %s", ch.Name, ch.Number, ch.Genre),
			) + "\n")
		}
	}

	if top := m.topOverlay(); top != nil {
		b.WriteString("\n")
		b.WriteString(m.renderOverlay(top))
	}

	if m.errMsg != "" {
		b.WriteString("\n" + styles.Error.Render(m.errMsg) + "\n")
	} else if m.toast != "" {
		b.WriteString("\n" + styles.Info.Render(m.toast) + "\n")
	}

	if m.showFooter {
		b.WriteString("\n" + styles.Footer.Render(m.footerHints()) + "\n")
	}
	return b.String()
}

func (m *Model) renderHeader() string {
	title := fmt.Sprintf("couchtv · %d channels", len(m.lineup.Channels()))
	if filter := m.grid.Filter(); filter != "" {
		title += styles.Filter.Render(fmt.Sprintf("  filter: %q", filter))
	}
	if m.session.State() != selection.Idle {
		title += styles.SelectedBadge.Render(
			fmt.Sprintf("  multiview %d/%d", m.session.Count(), selection.MaxEntries),
		)
	}
	return styles.Header.Render(title)
}

func (m *Model) renderRow(row catalog.Row) string {
	var b strings.Builder
	b.WriteString(styles.GenreHeader.Render(row.Genre) + "\n")

	focused, _ := m.grid.Current()
	tiles := make([]string, 0, len(row.Channels))
	for _, ch := range row.Channels {
		tiles = append(tiles, m.renderTile(ch, ch.ID == focused.ID))
	}
	b.WriteString("  " + strings.Join(tiles, "  ") + "\n")
	return b.String()
}

func (m *Model) renderTile(ch catalog.Channel, focused bool) string {
	label := fmt.Sprintf("%3d %s", ch.Number, ch.Name)
	if ordinal, picked := m.session.Contains(ch.ID); picked {
		label += styles.SelectedBadge.Render(fmt.Sprintf(" #%d", ordinal))
	}
	if focused {
		return styles.FocusedTile.Render(" " + label + " ")
	}
	return styles.Tile.Render(" " + label + " ")
}

func (m *Model) renderOverlay(o *overlay) string {
	switch o.kind {
	case overlayFilter:
		body := styles.OverlayTitle.Render("Filter channels") + "\n" + o.input.View()
		return styles.Overlay.Render(body)
	case overlayMenu:
		ch, _ := m.channelByID(o.menuTarget)
		return styles.Overlay.Render(m.renderMenu(styles.OverlayTitle.Render(ch.Name), o))
	case overlayConfirm:
		title := styles.ConfirmHighlight.Render(fmt.Sprintf("%d channels selected", m.session.Count()))
		return styles.Overlay.Render(m.renderMenu(title, o))
	}
	return ""
}

// renderMenu draws a list overlay under an already-styled title.
func (m *Model) renderMenu(title string, o *overlay) string {
	var b strings.Builder
	b.WriteString(title)
	for i, item := range o.menuItems {
		b.WriteString("\n")
		if i == o.menuCursor {
			b.WriteString(styles.MenuItemFocused.Render("> " + item.label))
		} else {
			b.WriteString(styles.MenuItem.Render("  " + item.label))
		}
	}
	return b.String()
}

func (m *Model) footerHints() string {
	hints := []string{"↑↓←→ navigate", "enter watch", "v multiview", "/ filter", "c menu", "esc back", "q quit"}
	if m.session.State() == selection.Selecting {
		hints = []string{"enter toggle", "x start watching", "esc review", "↑↓←→ navigate"}
	}
	return strings.Join(hints, " · ")
}
