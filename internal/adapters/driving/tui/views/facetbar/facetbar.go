// Package facetbar renders the facet menus with live counts and handles
// value toggling. It never mutates the engine itself: toggles are emitted
// as messages and routed through the app, so the bar stays a pure
// projection of the browser state like every other view.
package facetbar

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/keymap"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/messages"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/styles"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driving"
)

// View is the facet bar component.
type View struct {
	styles   *styles.Styles
	keys     *keymap.KeyMap
	browser  driving.Browser
	maxItems int

	facets  []domain.Facet
	rows    [][]domain.FacetRow
	active  int
	cursor  int
	focused bool
}

// NewView creates the facet bar over the browser's facet definitions.
func NewView(s *styles.Styles, keys *keymap.KeyMap, browser driving.Browser, maxItems int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if keys == nil {
		keys = keymap.DefaultKeyMap()
	}
	v := &View{
		styles:   s,
		keys:     keys,
		browser:  browser,
		maxItems: maxItems,
		facets:   browser.Facets(),
	}
	v.Refresh()
	return v
}

// Refresh re-pulls the visible rows of every facet. Called after each
// filter update so the badges track the current working set.
func (v *View) Refresh() {
	v.rows = make([][]domain.FacetRow, len(v.facets))
	for i, f := range v.facets {
		v.rows[i] = v.browser.FacetRows(f.ID, v.maxItems)
	}
	v.clampCursor()
}

func (v *View) clampCursor() {
	if v.active >= len(v.facets) {
		v.active = 0
	}
	if len(v.rows) == 0 {
		v.cursor = 0
		return
	}
	if max := len(v.rows[v.active]) - 1; v.cursor > max {
		v.cursor = max
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// Update handles key messages while the bar is focused.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !v.focused || len(v.facets) == 0 {
		return v, nil
	}

	switch {
	case keymap.Matches(keyMsg.String(), v.keys.NextFacet):
		v.active = (v.active + 1) % len(v.facets)
		v.cursor = 0

	case keymap.Matches(keyMsg.String(), v.keys.PrevFacet):
		v.active = (v.active + len(v.facets) - 1) % len(v.facets)
		v.cursor = 0

	case keymap.Matches(keyMsg.String(), v.keys.Down):
		if v.cursor < len(v.rows[v.active])-1 {
			v.cursor++
		}

	case keymap.Matches(keyMsg.String(), v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case keymap.Matches(keyMsg.String(), v.keys.ToggleValue),
		keymap.Matches(keyMsg.String(), v.keys.Select):
		if row, ok := v.highlighted(); ok {
			facet := v.facets[v.active].ID
			return v, func() tea.Msg {
				return messages.FacetToggled{Facet: facet, Value: row.Key}
			}
		}
	}
	return v, nil
}

func (v *View) highlighted() (domain.FacetRow, bool) {
	if v.active >= len(v.rows) || v.cursor >= len(v.rows[v.active]) {
		return domain.FacetRow{}, false
	}
	return v.rows[v.active][v.cursor], true
}

// View renders the facet menus side by side.
func (v *View) View() string {
	if len(v.facets) == 0 {
		return v.styles.Muted.Render("no facets configured")
	}

	columns := make([]string, 0, len(v.facets))
	for i, f := range v.facets {
		columns = append(columns, v.renderFacet(i, f))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (v *View) renderFacet(i int, f domain.Facet) string {
	var b strings.Builder

	header := fmt.Sprintf("%s %s", f.Icon, f.Label)
	if active := len(activeRows(v.rows[i])); active > 0 {
		header += fmt.Sprintf(" (%d)", active)
	}
	if v.focused && i == v.active {
		b.WriteString(v.styles.Title.Render(header))
	} else {
		b.WriteString(v.styles.Subtitle.Render(header))
	}
	b.WriteString("\n")

	for j, row := range v.rows[i] {
		mark := "[ ]"
		if row.Selected {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", mark, row.Label, v.styles.Badge.Render(fmt.Sprintf("(%d)", row.Count)))
		switch {
		case v.focused && i == v.active && j == v.cursor:
			line = v.styles.Selected.Render(line)
		case row.Selected:
			line = v.styles.Checked.Render(line)
		default:
			line = v.styles.Normal.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().MarginRight(2).Render(b.String())
}

func activeRows(rows []domain.FacetRow) []domain.FacetRow {
	var out []domain.FacetRow
	for _, r := range rows {
		if r.Selected {
			out = append(out, r)
		}
	}
	return out
}

// Focus gives the bar keyboard focus.
func (v *View) Focus() {
	v.focused = true
}

// Blur removes keyboard focus.
func (v *View) Blur() {
	v.focused = false
}

// Focused returns whether the bar has keyboard focus.
func (v *View) Focused() bool {
	return v.focused
}

// ActiveFacet returns the facet the cursor is on.
func (v *View) ActiveFacet() domain.FacetID {
	if len(v.facets) == 0 {
		return ""
	}
	return v.facets[v.active].ID
}

// Rows returns the currently rendered rows of a facet (for testing).
func (v *View) Rows(id domain.FacetID) []domain.FacetRow {
	for i, f := range v.facets {
		if f.ID == id {
			return v.rows[i]
		}
	}
	return nil
}
