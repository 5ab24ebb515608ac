// Package tui is the interactive exhibit browser. It follows the Elm
// architecture: the filter engine pushes results through the bridge into
// a channel, the program turns them into FilterUpdated messages, and the
// three projection views re-render from the same message. Views never
// talk to each other; the detail overlay and the facet bar round-trip
// their mutations through the app as messages.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/components/searchbox"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/keymap"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/messages"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/styles"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/views/detail"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/views/facetbar"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/views/gallery"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/views/objects"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/views/plan"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/services"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	styles *styles.Styles
	keys   *keymap.KeyMap

	search      *searchbox.SearchBox
	facetBar    *facetbar.View
	objectsView *objects.View
	galleryView *gallery.View
	planView    *plan.View
	detailView  *detail.View

	// updates receives filter results from the bridge subscription.
	updates   chan messages.FilterUpdated
	cancelSub func()

	currentView messages.ViewType
	prevView    messages.ViewType

	// ids and snapshot mirror the latest filter result for the header
	// and the handoff URL.
	ids      []string
	total    int
	snapshot domain.Snapshot

	flash  string
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	keys := keymap.DefaultKeyMap()
	debounce := time.Duration(ports.Settings.Search.DebounceMillis) * time.Millisecond

	a := &App{
		ports:       ports,
		styles:      s,
		keys:        keys,
		search:      searchbox.New(s, debounce),
		facetBar:    facetbar.NewView(s, keys, ports.Browser, ports.Settings.Facets.MaxMenuItems),
		objectsView: objects.NewView(s, keys),
		galleryView: gallery.NewView(s, keys),
		planView:    plan.NewView(s, keys, ports.Geometries),
		detailView:  detail.NewView(s, keys),
		updates:     make(chan messages.FilterUpdated, 16),
		currentView: viewFor(ports.Page),
	}
	a.focusActiveView()

	// The bridge callback runs on whichever goroutine mutated the
	// engine; it only forwards into the program's message loop. The
	// channel is buffered well beyond one-update-per-keypress.
	a.cancelSub = ports.Browser.Subscribe(func(records []domain.Record, snap domain.Snapshot) {
		select {
		case a.updates <- messages.FilterUpdated{Records: records, Snapshot: snap}:
		default:
		}
	})

	// Seed the views with the state from before the subscription.
	a.applyUpdate(messages.FilterUpdated{
		Records:  ports.Browser.Filtered(),
		Snapshot: ports.Browser.Snapshot(),
	})
	a.search.SetValue(a.snapshot.Search)

	return a, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("lapidarium - exhibit browser"),
		a.search.Init(),
		a.waitForUpdate(),
	)
}

// waitForUpdate blocks on the bridge channel; each received result
// re-arms itself from Update.
func (a *App) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return <-a.updates
	}
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.search.SetWidth(msg.Width)
		a.objectsView.SetDimensions(msg.Width, msg.Height)
		a.galleryView.SetDimensions(msg.Width, msg.Height)
		a.planView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.FilterUpdated:
		a.applyUpdate(msg)
		return a, a.waitForUpdate()

	case messages.SearchDebounceExpired:
		// Only the newest timer recomputes; earlier ones are stale.
		if a.search.Live(msg) {
			a.ports.Browser.SetSearch(a.search.Value())
		}
		return a, nil

	case messages.FacetToggled:
		a.flash = ""
		a.ports.Browser.ToggleFacetValue(msg.Facet, msg.Value)
		return a, nil

	case messages.FiltersCleared:
		a.search.Reset()
		a.ports.Browser.Reset()
		return a, nil

	case messages.RecordSelected:
		if rec, ok := a.ports.Browser.Record(msg.ID); ok {
			a.detailView.SetRecord(rec)
		}
		return a, nil

	case messages.DetailClosed:
		return a, nil

	case messages.TagAdded:
		// Adding, not toggling: a tag that is already part of the
		// constraint stays selected.
		if !hasTagValue(a.snapshot, msg.Value) {
			a.ports.Browser.ToggleFacetValue(domain.FacetTags, msg.Value)
		}
		return a, nil

	case messages.ViewChanged:
		a.switchView(msg.View)
		return a, nil

	case messages.Quit:
		return a, a.quit()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Forward remaining messages (blink ticks and the like) to the
	// focused input.
	if a.detailView.Open() {
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd
	}
	if a.search.Focused() {
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		return a, a.quit()
	}

	// The detail overlay captures everything while open.
	if a.detailView.Open() {
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd
	}

	// A focused search input owns the keyboard except esc and enter.
	if a.search.Focused() {
		switch msg.String() {
		case "esc":
			a.search.Blur()
			return a, nil
		case "enter":
			// Bypass the debounce on an explicit submit.
			a.search.Blur()
			a.ports.Browser.SetSearch(a.search.Value())
			return a, nil
		}
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}

	if a.currentView == messages.ViewHelp {
		if keymap.Matches(msg.String(), a.keys.Back) || keymap.Matches(msg.String(), a.keys.Help) {
			a.switchView(a.prevView)
		}
		return a, nil
	}

	switch {
	case keymap.Matches(msg.String(), a.keys.Quit):
		return a, a.quit()

	case keymap.Matches(msg.String(), a.keys.Help):
		a.prevView = a.currentView
		a.switchView(messages.ViewHelp)
		return a, nil

	case keymap.Matches(msg.String(), a.keys.FocusSearch):
		a.facetBar.Blur()
		return a, a.search.Focus()

	case keymap.Matches(msg.String(), a.keys.ClearFilters):
		a.search.Reset()
		a.ports.Browser.Reset()
		return a, nil

	case keymap.Matches(msg.String(), a.keys.NextTab):
		a.switchView(nextView(a.currentView, 1))
		return a, nil

	case keymap.Matches(msg.String(), a.keys.PrevTab):
		a.switchView(nextView(a.currentView, -1))
		return a, nil

	case keymap.Matches(msg.String(), a.keys.FocusFacets):
		if a.facetBar.Focused() {
			a.facetBar.Blur()
			a.focusActiveView()
		} else {
			a.blurViews()
			a.facetBar.Focus()
		}
		return a, nil

	case keymap.Matches(msg.String(), a.keys.Handoff):
		a.flash = services.HandoffURL(pageFor(a.currentView), a.snapshot, a.ids, a.total)
		return a, nil
	}

	if a.facetBar.Focused() {
		a.facetBar, cmd = a.facetBar.Update(msg)
		return a, cmd
	}

	switch a.currentView {
	case messages.ViewObjects:
		a.objectsView, cmd = a.objectsView.Update(msg)
	case messages.ViewGallery:
		a.galleryView, cmd = a.galleryView.Update(msg)
	case messages.ViewPlan:
		a.planView, cmd = a.planView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// applyUpdate fans one filter result out to every projection.
func (a *App) applyUpdate(msg messages.FilterUpdated) {
	a.ids = make([]string, len(msg.Records))
	for i, rec := range msg.Records {
		a.ids[i] = rec.ID
	}
	a.total = a.ports.Browser.Total()
	a.snapshot = msg.Snapshot

	a.objectsView.SetRecords(msg.Records)
	a.galleryView.SetRecords(msg.Records)
	a.planView.SetRecords(msg.Records)
	a.facetBar.Refresh()
}

func (a *App) switchView(view messages.ViewType) {
	a.currentView = view
	a.flash = ""
	if !a.facetBar.Focused() {
		a.focusActiveView()
	}
}

func (a *App) focusActiveView() {
	a.blurViews()
	switch a.currentView {
	case messages.ViewObjects:
		a.objectsView.Focus()
	case messages.ViewGallery:
		a.galleryView.Focus()
	case messages.ViewPlan:
		a.planView.Focus()
	case messages.ViewHelp:
	}
}

func (a *App) blurViews() {
	a.objectsView.Blur()
	a.galleryView.Blur()
	a.planView.Blur()
}

func (a *App) quit() tea.Cmd {
	if a.cancelSub != nil {
		a.cancelSub()
		a.cancelSub = nil
	}
	return tea.Quit
}

func nextView(v messages.ViewType, step int) messages.ViewType {
	order := []messages.ViewType{messages.ViewObjects, messages.ViewGallery, messages.ViewPlan}
	for i, candidate := range order {
		if candidate == v {
			return order[(i+len(order)+step)%len(order)]
		}
	}
	return messages.ViewObjects
}

// viewFor maps a page identity to its projection; unknown pages open the
// object list.
func viewFor(page string) messages.ViewType {
	switch page {
	case "gallery.html":
		return messages.ViewGallery
	case "plan.html":
		return messages.ViewPlan
	default:
		return messages.ViewObjects
	}
}

func pageFor(v messages.ViewType) string {
	switch v {
	case messages.ViewGallery:
		return "gallery.html"
	case messages.ViewPlan:
		return "plan.html"
	default:
		return "objects.html"
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.currentView == messages.ViewHelp {
		return a.viewHelp()
	}

	header := a.styles.Title.Render("Lapidarium") + "  " +
		a.styles.Muted.Render(fmt.Sprintf("%d of %d objects", len(a.ids), a.total))

	main := a.activeViewBody()
	if a.detailView.Open() {
		main = a.detailView.View()
	}

	status := a.statusBar()

	return header + "\n\n" +
		a.search.View() + "\n\n" +
		a.facetBar.View() + "\n" +
		a.tabBar() + "\n\n" +
		main + "\n" +
		status
}

func (a *App) activeViewBody() string {
	switch a.currentView {
	case messages.ViewGallery:
		return a.galleryView.View()
	case messages.ViewPlan:
		return a.planView.View()
	default:
		return a.objectsView.View()
	}
}

func (a *App) tabBar() string {
	var out string
	for _, v := range []messages.ViewType{messages.ViewObjects, messages.ViewGallery, messages.ViewPlan} {
		if v == a.currentView {
			out += a.styles.TabActive.Render(v.String())
		} else {
			out += a.styles.Tab.Render(v.String())
		}
	}
	return out
}

func (a *App) statusBar() string {
	if a.flash != "" {
		return a.styles.StatusBar.Render(a.flash)
	}
	var parts []string
	for _, b := range a.keys.ShortHelp() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "  ·  "
		}
		out += p
	}
	return a.styles.StatusBar.Render(out)
}

func (a *App) viewHelp() string {
	var out string
	out += a.styles.Title.Render("Help") + "\n\n"
	for _, group := range a.keys.FullHelp() {
		for _, b := range group {
			out += fmt.Sprintf("  %-12s %s\n", b.Help().Key, b.Help().Desc)
		}
		out += "\n"
	}
	out += a.styles.Help.Render("[esc] back")
	return out
}

// hasTagValue reports whether the snapshot already carries the tag,
// comparing on folded keys like the engine does.
func hasTagValue(snap domain.Snapshot, value string) bool {
	for _, v := range snap.Facets[domain.FacetTags] {
		if domain.NormalizeTag(v) == domain.NormalizeTag(value) {
			return true
		}
	}
	return false
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Snapshot returns the latest filter snapshot seen by the app.
func (a *App) Snapshot() domain.Snapshot {
	return a.snapshot
}

// FilteredIDs returns the identifiers of the current working set.
func (a *App) FilteredIDs() []string {
	return a.ids
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.search.SetWidth(width)
	a.objectsView.SetDimensions(width, height)
	a.galleryView.SetDimensions(width, height)
	a.planView.SetDimensions(width, height)
}
