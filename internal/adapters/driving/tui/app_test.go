package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/messages"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/services"
)

func browseFacets() []domain.Facet {
	return []domain.Facet{
		{
			ID:    domain.FacetMaterial,
			Label: "Material",
			Icon:  "◆",
			Extract: func(rec domain.Record) []string {
				if v := domain.NormalizeScalar(rec.Field("material")); v != "" {
					return []string{v}
				}
				return nil
			},
		},
		{
			ID:         domain.FacetTags,
			Label:      "Tags",
			Icon:       "#",
			MultiValue: true,
			CaseFold:   true,
			Extract: func(rec domain.Record) []string {
				return domain.SplitDelimited(rec.Field("tags"), ",")
			},
		},
	}
}

func browseRecords() []domain.Record {
	return []domain.Record{
		{ID: "A", Fields: map[string]string{
			"inv": "A", "title": "Lion sarcophagus", "material": "stone", "tags": "child,burial",
		}},
		{ID: "B", Fields: map[string]string{
			"inv": "B", "title": "Wooden coffin", "material": "wood", "tags": "child",
		}},
		{ID: "C", Fields: map[string]string{
			"inv": "C", "title": "Plain chest", "material": "stone", "tags": "adult",
		}},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	engine := services.NewEngine(browseFacets(), []string{"title", "material", "tags"})
	engine.SetData(browseRecords(), nil)

	app, err := NewApp(&Ports{
		Browser:  engine,
		Settings: domain.DefaultAppSettings(),
		Geometries: []domain.Geometry{
			{RecordID: "A", Kind: domain.GeometryMarker, Lat: 48.1, Lng: 16.3},
			{RecordID: "C", Kind: domain.GeometryPolygon, Points: [][2]float64{{48, 16}, {48, 17}, {49, 17}}},
		},
		Page: "objects.html",
	})
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app
}

// pump delivers the queued filter update the way the program loop would.
func pump(t *testing.T, a *App) {
	t.Helper()
	select {
	case msg := <-a.updates:
		a.Update(msg)
	default:
		t.Fatal("no filter update queued")
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNewApp_SeedsInitialState(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, []string{"A", "B", "C"}, a.FilteredIDs())
	assert.Equal(t, messages.ViewObjects, a.CurrentView())
	assert.True(t, a.Snapshot().IsZero())
}

func TestApp_NewAppRequiresBrowser(t *testing.T) {
	_, err := NewApp(&Ports{Settings: domain.DefaultAppSettings()})
	assert.Error(t, err)
}

func TestApp_FacetToggleNarrowsWorkingSet(t *testing.T) {
	a := newTestApp(t)

	a.Update(messages.FacetToggled{Facet: domain.FacetMaterial, Value: "stone"})
	pump(t, a)

	assert.Equal(t, []string{"A", "C"}, a.FilteredIDs())
	assert.Equal(t, []string{"stone"}, a.Snapshot().Facets[domain.FacetMaterial])
}

func TestApp_SearchSubmitBypassesDebounce(t *testing.T) {
	a := newTestApp(t)

	a.Update(keyMsg("/"))
	require.True(t, a.search.Focused())

	a.Update(keyMsg("wood"))
	a.Update(keyMsg("enter"))
	pump(t, a)

	assert.False(t, a.search.Focused())
	assert.Equal(t, []string{"B"}, a.FilteredIDs())
}

func TestApp_StaleDebounceExpiryIsIgnored(t *testing.T) {
	a := newTestApp(t)

	a.Update(keyMsg("/"))
	a.Update(keyMsg("w"))

	// A timer armed before the latest edit fires with an older sequence.
	a.Update(messages.SearchDebounceExpired{Seq: 0})
	select {
	case <-a.updates:
		t.Fatal("stale expiry must not recompute")
	default:
	}
}

func TestApp_TagAddedIsAddOnly(t *testing.T) {
	a := newTestApp(t)

	a.Update(messages.TagAdded{Value: "child"})
	pump(t, a)
	require.Equal(t, []string{"A", "B"}, a.FilteredIDs())

	// Adding an already-selected tag must not toggle it off, even with a
	// different casing.
	a.Update(messages.TagAdded{Value: "CHILD"})
	select {
	case <-a.updates:
		t.Fatal("re-adding a selected tag must be a no-op")
	default:
	}
	assert.Equal(t, []string{"A", "B"}, a.FilteredIDs())
}

func TestApp_ClearFiltersResetsEverything(t *testing.T) {
	a := newTestApp(t)

	a.Update(messages.FacetToggled{Facet: domain.FacetMaterial, Value: "wood"})
	pump(t, a)
	require.Equal(t, []string{"B"}, a.FilteredIDs())

	a.Update(keyMsg("r"))
	pump(t, a)

	assert.Equal(t, []string{"A", "B", "C"}, a.FilteredIDs())
	assert.True(t, a.Snapshot().IsZero())
	assert.Empty(t, a.search.Value())
}

func TestApp_TabCyclesProjections(t *testing.T) {
	a := newTestApp(t)

	a.Update(keyMsg("tab"))
	assert.Equal(t, messages.ViewGallery, a.CurrentView())
	a.Update(keyMsg("tab"))
	assert.Equal(t, messages.ViewPlan, a.CurrentView())
	a.Update(keyMsg("tab"))
	assert.Equal(t, messages.ViewObjects, a.CurrentView())

	a.Update(keyMsg("shift+tab"))
	assert.Equal(t, messages.ViewPlan, a.CurrentView())
}

func TestApp_ProjectionsShareOneWorkingSet(t *testing.T) {
	a := newTestApp(t)

	a.Update(messages.FacetToggled{Facet: domain.FacetMaterial, Value: "stone"})
	pump(t, a)

	// Both geocoded records survive the constraint; the plan shows them
	// while the list shows the same two records.
	assert.Equal(t, 2, a.planView.Placed())
	sel, ok := a.objectsView.Selected()
	require.True(t, ok)
	assert.Equal(t, "A", sel.ID)
}

func TestApp_HelpOverlay(t *testing.T) {
	a := newTestApp(t)

	a.Update(keyMsg("tab"))
	a.Update(keyMsg("?"))
	assert.Equal(t, messages.ViewHelp, a.CurrentView())

	a.Update(keyMsg("esc"))
	assert.Equal(t, messages.ViewGallery, a.CurrentView())
}

func TestApp_DetailOverlayRoundTrip(t *testing.T) {
	a := newTestApp(t)

	a.Update(messages.RecordSelected{ID: "A"})
	require.True(t, a.detailView.Open())

	_, cmd := a.Update(keyMsg("esc"))
	require.NotNil(t, cmd)
	a.Update(cmd())
	assert.False(t, a.detailView.Open())
}

func TestApp_HandoffFlashCarriesState(t *testing.T) {
	a := newTestApp(t)

	a.Update(messages.FacetToggled{Facet: domain.FacetMaterial, Value: "stone"})
	pump(t, a)
	a.Update(keyMsg("u"))

	assert.Contains(t, a.flash, "objects.html?")
	assert.Contains(t, a.flash, "material=stone")
}

func TestApp_FacetBarFocusToggle(t *testing.T) {
	a := newTestApp(t)

	a.Update(keyMsg("f"))
	assert.True(t, a.facetBar.Focused())
	assert.False(t, a.objectsView.Focused())

	a.Update(keyMsg("f"))
	assert.False(t, a.facetBar.Focused())
	assert.True(t, a.objectsView.Focused())
}

func TestApp_FacetBarToggleThroughKeyboard(t *testing.T) {
	a := newTestApp(t)

	a.Update(keyMsg("f"))
	_, cmd := a.Update(keyMsg(" "))
	require.NotNil(t, cmd)

	a.Update(cmd())
	pump(t, a)
	assert.NotEmpty(t, a.Snapshot().Facets[domain.FacetMaterial])
}

func TestApp_QuitCancelsSubscription(t *testing.T) {
	a := newTestApp(t)

	_, cmd := a.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Nil(t, a.cancelSub)

	// Mutations after quit no longer reach the channel.
	a.ports.Browser.SetSearch("wood")
	select {
	case <-a.updates:
		t.Fatal("cancelled subscription still delivered")
	default:
	}
}

func TestNewApp_PageSelectsStartingProjection(t *testing.T) {
	engine := services.NewEngine(browseFacets(), []string{"title"})
	engine.SetData(browseRecords(), nil)

	app, err := NewApp(&Ports{
		Browser:  engine,
		Settings: domain.DefaultAppSettings(),
		Page:     "plan.html",
	})
	require.NoError(t, err)
	assert.Equal(t, messages.ViewPlan, app.CurrentView())
}

func TestApp_ViewRendersHeaderCounts(t *testing.T) {
	a := newTestApp(t)

	a.Update(messages.FacetToggled{Facet: domain.FacetMaterial, Value: "wood"})
	pump(t, a)

	out := a.View()
	assert.Contains(t, out, "1 of 3 objects")
}
