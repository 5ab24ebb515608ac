package objects

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui/messages"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

func listRecords(n int) []domain.Record {
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = domain.Record{
			ID:     fmt.Sprintf("R%02d", i),
			Fields: map[string]string{"title": fmt.Sprintf("object %d", i)},
		}
	}
	return out
}

func down() tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyDown} }
func up() tea.KeyMsg    { return tea.KeyMsg{Type: tea.KeyUp} }
func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func TestView_CursorMovesWithinBounds(t *testing.T) {
	v := NewView(nil, nil)
	v.SetRecords(listRecords(3))
	v.Focus()

	v.Update(up())
	assert.Equal(t, 0, v.Cursor())

	v.Update(down())
	v.Update(down())
	v.Update(down())
	assert.Equal(t, 2, v.Cursor())
}

func TestView_SelectEmitsRecordSelected(t *testing.T) {
	v := NewView(nil, nil)
	v.SetRecords(listRecords(3))
	v.Focus()
	v.Update(down())

	_, cmd := v.Update(enter())
	require.NotNil(t, cmd)
	assert.Equal(t, messages.RecordSelected{ID: "R01"}, cmd())
}

func TestView_UnfocusedIgnoresKeys(t *testing.T) {
	v := NewView(nil, nil)
	v.SetRecords(listRecords(3))

	v.Update(down())
	assert.Equal(t, 0, v.Cursor())
}

func TestView_SetRecordsClampsCursor(t *testing.T) {
	v := NewView(nil, nil)
	v.SetRecords(listRecords(5))
	v.Focus()
	for i := 0; i < 4; i++ {
		v.Update(down())
	}
	require.Equal(t, 4, v.Cursor())

	v.SetRecords(listRecords(2))
	assert.Equal(t, 1, v.Cursor())

	v.SetRecords(nil)
	assert.Equal(t, 0, v.Cursor())
}

func TestView_WindowFooterShowsRange(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 18) // window of 10 rows
	v.SetRecords(listRecords(25))
	v.Focus()

	out := v.View()
	assert.Contains(t, out, "1-10 of 25")
}

func TestView_EmptyStateMessage(t *testing.T) {
	v := NewView(nil, nil)
	v.SetRecords(nil)

	assert.Contains(t, v.View(), "No objects match")
}
