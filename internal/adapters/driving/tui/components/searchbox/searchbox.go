// Package searchbox provides the debounced search input for the TUI.
package searchbox

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/messages"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/styles"
)

// SearchBox wraps a bubbles textinput with debounce bookkeeping. Each
// edit bumps a sequence number and arms a timer; only the expiry carrying
// the current sequence is live, so rapid keystrokes collapse into one
// recompute of the filter.
type SearchBox struct {
	textinput textinput.Model
	styles    *styles.Styles
	debounce  time.Duration
	seq       int
}

// New creates a search box with the given debounce interval.
func New(s *styles.Styles, debounce time.Duration) *SearchBox {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search the catalogue..."
	ti.CharLimit = 256
	ti.Width = 40

	return &SearchBox{
		textinput: ti,
		styles:    s,
		debounce:  debounce,
	}
}

// Init initialises the search box.
func (s *SearchBox) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. When the value changed, it arms a fresh
// debounce timer and invalidates any earlier one.
func (s *SearchBox) Update(msg tea.Msg) (*SearchBox, tea.Cmd) {
	before := s.textinput.Value()
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)

	if s.textinput.Value() != before {
		s.seq++
		return s, tea.Batch(cmd, s.armTimer())
	}
	return s, cmd
}

func (s *SearchBox) armTimer() tea.Cmd {
	seq := s.seq
	return tea.Tick(s.debounce, func(time.Time) tea.Msg {
		return messages.SearchDebounceExpired{Seq: seq}
	})
}

// Live reports whether a debounce expiry is the newest one.
func (s *SearchBox) Live(msg messages.SearchDebounceExpired) bool {
	return msg.Seq == s.seq
}

// View renders the search box.
func (s *SearchBox) View() string {
	label := s.styles.Title.Render("Search: ")
	input := s.styles.InputField.Render(s.textinput.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the current input value.
func (s *SearchBox) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value without arming the debounce timer.
func (s *SearchBox) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *SearchBox) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchBox) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchBox) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchBox) SetWidth(width int) {
	inputWidth := width - 14
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Reset clears the input without arming the debounce timer.
func (s *SearchBox) Reset() {
	s.textinput.Reset()
	s.seq++
}
