// Package gallery renders the filtered records as a card grid.
package gallery

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/keymap"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/messages"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/styles"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

const cardWidth = 26

// View is the card grid projection.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap

	records []domain.Record
	cursor  int
	columns int
	rows    int
	focused bool
}

// NewView creates an empty gallery.
func NewView(s *styles.Styles, keys *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if keys == nil {
		keys = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keys: keys, columns: 3, rows: 4}
}

// SetRecords replaces the displayed records, keeping the cursor in range.
func (v *View) SetRecords(records []domain.Record) {
	v.records = records
	if v.cursor >= len(records) {
		v.cursor = len(records) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// SetDimensions recomputes the grid from the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.columns = width / cardWidth
	if v.columns < 1 {
		v.columns = 1
	}
	v.rows = (height - 10) / 4
	if v.rows < 1 {
		v.rows = 1
	}
}

// Update handles key messages while the grid is focused. Up and down
// move by one row, so the cursor walks the grid vertically.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !v.focused {
		return v, nil
	}

	switch {
	case keymap.Matches(keyMsg.String(), v.keys.Down):
		if v.cursor+v.columns < len(v.records) {
			v.cursor += v.columns
		}

	case keymap.Matches(keyMsg.String(), v.keys.Up):
		if v.cursor-v.columns >= 0 {
			v.cursor -= v.columns
		}

	case keymap.Matches(keyMsg.String(), v.keys.Select):
		if rec, ok := v.Selected(); ok {
			return v, func() tea.Msg {
				return messages.RecordSelected{ID: rec.ID}
			}
		}
	}
	return v, nil
}

// View renders the visible card rows around the cursor.
func (v *View) View() string {
	if len(v.records) == 0 {
		return v.styles.Muted.Render("No objects match the current filters.")
	}

	visible := v.columns * v.rows
	start := (v.cursor / v.columns) * v.columns
	if start+visible > len(v.records) && len(v.records) > visible {
		start = len(v.records) - visible
		start -= start % v.columns
	}
	if start+visible > len(v.records) {
		visible = len(v.records) - start
	}

	var rows []string
	for row := 0; row < visible; row += v.columns {
		var cards []string
		for col := 0; col < v.columns && start+row+col < start+visible; col++ {
			idx := start + row + col
			cards = append(cards, v.renderCard(idx))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	grid := strings.Join(rows, "\n")
	if len(v.records) > visible {
		grid += "\n" + v.styles.Muted.Render(
			fmt.Sprintf("…showing %d of %d", visible, len(v.records)))
	}
	return grid
}

func (v *View) renderCard(idx int) string {
	rec := v.records[idx]
	title := rec.Field("title")
	if title == "" {
		title = rec.Field("object_name")
	}
	if title == "" {
		title = rec.ID
	}
	title = truncate(title, cardWidth-4)

	sub := rec.Field("material")
	if t := rec.Field("type"); t != "" {
		if sub != "" {
			sub += " · "
		}
		sub += t
	}

	body := v.styles.Normal.Render(title) + "\n" +
		v.styles.Badge.Render(truncate(sub, cardWidth-4)) + "\n" +
		v.styles.Muted.Render(rec.ID)

	if v.focused && idx == v.cursor {
		return v.styles.CardSelected.Render(body)
	}
	return v.styles.Card.Render(body)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// Selected returns the highlighted record.
func (v *View) Selected() (domain.Record, bool) {
	if v.cursor < 0 || v.cursor >= len(v.records) {
		return domain.Record{}, false
	}
	return v.records[v.cursor], true
}

// Focus gives the grid keyboard focus.
func (v *View) Focus() { v.focused = true }

// Blur removes keyboard focus.
func (v *View) Blur() { v.focused = false }

// Focused returns whether the grid has keyboard focus.
func (v *View) Focused() bool { return v.focused }

// Cursor returns the cursor position (for testing).
func (v *View) Cursor() int { return v.cursor }
