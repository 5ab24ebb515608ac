// Package detail renders the record detail overlay. Besides showing all
// fields it can add one of the record's tags to the active tag
// constraint, the same path a checkbox toggle takes - the overlay emits
// a message and the app routes it into the engine.
package detail

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/keymap"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/messages"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/styles"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

// fieldOrder lists the fields shown first, in display order. Remaining
// fields follow alphabetically.
var fieldOrder = []string{"title", "object_name", "type", "material", "date", "description", "tags"}

// View is the detail overlay.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap

	record   domain.Record
	hasRec   bool
	tagging  bool
	tagInput textinput.Model
}

// NewView creates an empty detail overlay.
func NewView(s *styles.Styles, keys *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if keys == nil {
		keys = keymap.DefaultKeyMap()
	}
	ti := textinput.New()
	ti.Placeholder = "tag to filter by"
	ti.CharLimit = 64
	ti.Width = 30

	return &View{styles: s, keys: keys, tagInput: ti}
}

// SetRecord opens the overlay for a record.
func (v *View) SetRecord(rec domain.Record) {
	v.record = rec
	v.hasRec = true
	v.tagging = false
	v.tagInput.Reset()
}

// Update handles key messages while the overlay is open.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !v.hasRec {
		return v, nil
	}

	if v.tagging {
		switch keyMsg.String() {
		case "enter":
			value := domain.NormalizeScalar(v.tagInput.Value())
			v.tagging = false
			v.tagInput.Blur()
			if value == "" {
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.TagAdded{Value: value}
			}
		case "esc":
			v.tagging = false
			v.tagInput.Blur()
			return v, nil
		}
		var cmd tea.Cmd
		v.tagInput, cmd = v.tagInput.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(keyMsg.String(), v.keys.AddTag):
		v.tagging = true
		return v, v.tagInput.Focus()

	case keymap.Matches(keyMsg.String(), v.keys.Back):
		v.hasRec = false
		return v, func() tea.Msg {
			return messages.DetailClosed{}
		}
	}
	return v, nil
}

// View renders the overlay.
func (v *View) View() string {
	if !v.hasRec {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.record.ID))
	b.WriteString("\n\n")

	for _, name := range orderedFields(v.record) {
		value := v.record.Field(name)
		if value == "" {
			continue
		}
		b.WriteString(v.styles.Subtitle.Render(name + ": "))
		b.WriteString(v.styles.Normal.Render(value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.tagging {
		b.WriteString(v.styles.Subtitle.Render("Add tag: "))
		b.WriteString(v.tagInput.View())
	} else {
		b.WriteString(v.styles.Help.Render(
			fmt.Sprintf("[%s] add tag filter  [esc] close", "a")))
	}

	return v.styles.Border.Render(b.String())
}

func orderedFields(rec domain.Record) []string {
	shown := make(map[string]struct{}, len(fieldOrder))
	out := make([]string, 0, len(rec.Fields))
	for _, name := range fieldOrder {
		if _, ok := rec.Fields[name]; ok {
			out = append(out, name)
			shown[name] = struct{}{}
		}
	}
	var rest []string
	for name := range rec.Fields {
		if _, ok := shown[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Open reports whether the overlay is showing a record.
func (v *View) Open() bool { return v.hasRec }

// Close dismisses the overlay.
func (v *View) Close() { v.hasRec = false }

// Tagging reports whether the tag input is active (for testing).
func (v *View) Tagging() bool { return v.tagging }
