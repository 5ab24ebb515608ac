// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back closes the detail overlay or leaves search focus.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select opens the detail overlay for the highlighted record.
	Select key.Binding

	// FocusSearch moves focus to the search input.
	FocusSearch key.Binding

	// ClearFilters resets search and all facet constraints.
	ClearFilters key.Binding

	// NextTab and PrevTab cycle the projection views.
	NextTab key.Binding
	PrevTab key.Binding

	// FocusFacets toggles focus between the facet bar and the list.
	FocusFacets key.Binding

	// NextFacet and PrevFacet move between facet menus.
	NextFacet key.Binding
	PrevFacet key.Binding

	// ToggleValue toggles the highlighted facet value.
	ToggleValue key.Binding

	// AddTag adds a tag constraint from the detail overlay.
	AddTag key.Binding

	// Handoff shows the cross-page handoff URL.
	Handoff key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		FocusSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filters"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous view"),
		),
		FocusFacets: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "facets"),
		),
		NextFacet: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next facet"),
		),
		PrevFacet: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous facet"),
		),
		ToggleValue: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle value"),
		),
		AddTag: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add tag"),
		),
		Handoff: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "handoff url"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusSearch, k.ToggleValue, k.Select, k.NextTab, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.FocusSearch, k.ClearFilters, k.Handoff},
		{k.FocusFacets, k.NextFacet, k.PrevFacet, k.ToggleValue, k.AddTag},
		{k.NextTab, k.PrevTab, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
