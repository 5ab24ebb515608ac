// Package objects renders the filtered records as a scrolling list.
package objects

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/keymap"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/messages"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/styles"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

// View is the object list projection.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap

	records []domain.Record
	cursor  int
	offset  int
	height  int
	focused bool
}

// NewView creates an empty object list.
func NewView(s *styles.Styles, keys *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if keys == nil {
		keys = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keys: keys, height: 20}
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
	v.scroll()
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(_, height int) {
	if height > 8 {
		v.height = height - 8
	}
	v.scroll()
}

// Update handles key messages while the list is focused.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !v.focused {
		return v, nil
	}

	switch {
	case keymap.Matches(keyMsg.String(), v.keys.Down):
		if v.cursor < len(v.records)-1 {
			v.cursor++
			v.scroll()
		}

	case keymap.Matches(keyMsg.String(), v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.scroll()
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

func (v *View) scroll() {
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+v.height {
		v.offset = v.cursor - v.height + 1
	}
}

// View renders the list window.
func (v *View) View() string {
	if len(v.records) == 0 {
		return v.styles.Muted.Render("No objects match the current filters.")
	}

	var b strings.Builder
	end := v.offset + v.height
	if end > len(v.records) {
		end = len(v.records)
	}

	for i := v.offset; i < end; i++ {
		rec := v.records[i]
		line := fmt.Sprintf("%-12s %s", rec.ID, title(rec))
		if material := rec.Field("material"); material != "" {
			line += v.styles.Badge.Render("  " + material)
		}
		if v.focused && i == v.cursor {
			line = v.styles.Selected.Render(line)
		} else {
			line = v.styles.Normal.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(v.records) > v.height {
		b.WriteString(v.styles.Muted.Render(
			fmt.Sprintf("…%d-%d of %d", v.offset+1, end, len(v.records))))
	}
	return b.String()
}

func title(rec domain.Record) string {
	if t := rec.Field("title"); t != "" {
		return t
	}
	if t := rec.Field("object_name"); t != "" {
		return t
	}
	return rec.ID
}

// Selected returns the highlighted record.
func (v *View) Selected() (domain.Record, bool) {
	if v.cursor < 0 || v.cursor >= len(v.records) {
		return domain.Record{}, false
	}
	return v.records[v.cursor], true
}

// Focus gives the list keyboard focus.
func (v *View) Focus() { v.focused = true }

// Blur removes keyboard focus.
func (v *View) Blur() { v.focused = false }

// Focused returns whether the list has keyboard focus.
func (v *View) Focused() bool { return v.focused }

// Cursor returns the cursor position (for testing).
func (v *View) Cursor() int { return v.cursor }
