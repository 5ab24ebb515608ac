package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacetsCmd_Use(t *testing.T) {
	assert.Equal(t, "facets [query]", facetsCmd.Use)
}

func TestFacetsCmd_UnconstrainedCounts(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	out, err := execute(t, "facets")

	require.NoError(t, err)
	assert.Contains(t, out, "Material")
	assert.Contains(t, out, "[ ] stone (2)")
	assert.Contains(t, out, "[ ] wood (1)")
	assert.Contains(t, out, "Tags")
	assert.Contains(t, out, "[ ] child (2)")
}

func TestFacetsCmd_SelectedValueIsMarked(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	out, err := execute(t, "facets", "material=stone")

	require.NoError(t, err)
	assert.Contains(t, out, "[x] stone (2)")
	// The material menu keeps its full breadth under its own constraint.
	assert.Contains(t, out, "[ ] wood (1)")
}

func TestFacetsCmd_OtherFacetCountsNarrow(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	out, err := execute(t, "facets", "tags=adult")

	require.NoError(t, err)
	// Only SK-003 carries the adult tag, so material narrows to stone.
	assert.Contains(t, out, "[ ] stone (1)")
	assert.NotContains(t, out, "wood")
}
