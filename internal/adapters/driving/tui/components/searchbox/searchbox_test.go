package searchbox

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/messages"
)

func expiry(seq int) messages.SearchDebounceExpired {
	return messages.SearchDebounceExpired{Seq: seq}
}

func typeRunes(s *SearchBox, text string) tea.Cmd {
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return cmd
}

func TestSearchBox_EditArmsDebounceTimer(t *testing.T) {
	s := New(nil, 50*time.Millisecond)
	s.Focus()

	cmd := typeRunes(s, "lion")
	require.NotNil(t, cmd)
	assert.Equal(t, "lion", s.Value())
}

func TestSearchBox_LaterEditInvalidatesEarlierExpiry(t *testing.T) {
	s := New(nil, 50*time.Millisecond)
	s.Focus()

	typeRunes(s, "l")
	first := s.seq
	typeRunes(s, "i")

	assert.False(t, s.Live(expiry(first)))
	assert.True(t, s.Live(expiry(s.seq)))
}

func TestSearchBox_NonEditKeysDoNotBumpSequence(t *testing.T) {
	s := New(nil, 50*time.Millisecond)
	s.Focus()
	typeRunes(s, "a")
	before := s.seq

	s.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, before, s.seq)
}

func TestSearchBox_SetValueDoesNotArm(t *testing.T) {
	s := New(nil, 50*time.Millisecond)
	before := s.seq

	s.SetValue("restored from snapshot")
	assert.Equal(t, before, s.seq)
	assert.Equal(t, "restored from snapshot", s.Value())
}

func TestSearchBox_ResetInvalidatesPendingExpiry(t *testing.T) {
	s := New(nil, 50*time.Millisecond)
	s.Focus()
	typeRunes(s, "x")
	pending := s.seq

	s.Reset()
	assert.Empty(t, s.Value())
	assert.False(t, s.Live(expiry(pending)))
}
