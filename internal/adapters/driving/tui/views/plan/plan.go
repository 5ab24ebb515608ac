// Package plan renders the site-plan projection: the geocoded subset of
// the filtered records. Records without geometry are simply not listed;
// the header reports how many of the working set could be placed.
package plan

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/keymap"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/messages"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/styles"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

// View is the site-plan projection.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap

	// byRecord indexes the static geometry by record identifier. A record
	// may carry several shapes.
	byRecord map[string][]domain.Geometry

	placed  []domain.Record
	total   int
	cursor  int
	offset  int
	height  int
	focused bool
}

// NewView creates the plan view over the page's geometry.
func NewView(s *styles.Styles, keys *keymap.KeyMap, geometries []domain.Geometry) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if keys == nil {
		keys = keymap.DefaultKeyMap()
	}
	byRecord := make(map[string][]domain.Geometry, len(geometries))
	for _, g := range geometries {
		byRecord[g.RecordID] = append(byRecord[g.RecordID], g)
	}
	return &View{styles: s, keys: keys, byRecord: byRecord, height: 18}
}

// SetRecords projects the filtered set onto the plan: only geocoded
// records are kept, in dataset order.
func (v *View) SetRecords(records []domain.Record) {
	v.total = len(records)
	v.placed = v.placed[:0]
	for _, rec := range records {
		if len(v.byRecord[rec.ID]) > 0 {
			v.placed = append(v.placed, rec)
		}
	}
	if v.cursor >= len(v.placed) {
		v.cursor = len(v.placed) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.scroll()
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(_, height int) {
	if height > 10 {
		v.height = height - 10
	}
	v.scroll()
}

// Update handles key messages while the plan is focused.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !v.focused {
		return v, nil
	}

	switch {
	case keymap.Matches(keyMsg.String(), v.keys.Down):
		if v.cursor < len(v.placed)-1 {
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

// View renders the placed records with their shapes.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(
		fmt.Sprintf("%d of %d placed on the plan", len(v.placed), v.total)))
	b.WriteString("\n\n")

	if len(v.placed) == 0 {
		b.WriteString(v.styles.Muted.Render("Nothing to plot."))
		return b.String()
	}

	end := v.offset + v.height
	if end > len(v.placed) {
		end = len(v.placed)
	}
	for i := v.offset; i < end; i++ {
		rec := v.placed[i]
		line := fmt.Sprintf("%s %-12s %s", v.shapeGlyphs(rec.ID), rec.ID, v.position(rec.ID))
		if v.focused && i == v.cursor {
			line = v.styles.Selected.Render(line)
		} else {
			line = v.styles.Normal.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) shapeGlyphs(id string) string {
	var b strings.Builder
	for _, g := range v.byRecord[id] {
		if g.Kind == domain.GeometryMarker {
			b.WriteString("●")
		} else {
			b.WriteString("▰")
		}
	}
	return b.String()
}

func (v *View) position(id string) string {
	for _, g := range v.byRecord[id] {
		switch g.Kind {
		case domain.GeometryMarker:
			return fmt.Sprintf("%.5f, %.5f", g.Lat, g.Lng)
		case domain.GeometryPolygon:
			if len(g.Points) > 0 {
				return fmt.Sprintf("%.5f, %.5f (%d vertices)",
					g.Points[0][0], g.Points[0][1], len(g.Points))
			}
		}
	}
	return ""
}

// Selected returns the highlighted record.
func (v *View) Selected() (domain.Record, bool) {
	if v.cursor < 0 || v.cursor >= len(v.placed) {
		return domain.Record{}, false
	}
	return v.placed[v.cursor], true
}

// Placed returns how many filtered records carry geometry.
func (v *View) Placed() int { return len(v.placed) }

// Focus gives the plan keyboard focus.
func (v *View) Focus() { v.focused = true }

// Blur removes keyboard focus.
func (v *View) Blur() { v.focused = false }

// Focused returns whether the plan has keyboard focus.
func (v *View) Focused() bool { return v.focused }
