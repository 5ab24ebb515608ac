package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driven/storage/memory"
	"github.com/antiquarium-labs/lapidarium/internal/core/services"
)

const testCatalogue = `[
  {"inventory_number": "SK-001", "title": "Lion sarcophagus", "material": "stone", "tags": "child,burial"},
  {"inventory_number": "SK-002", "title": "Wooden coffin", "material": "wood", "tags": "child"},
  {"inventory_number": "SK-003", "title": "Plain chest", "material": "stone", "tags": "adult"}
]`

// setupTestCatalogue points the CLI at a throwaway dataset and returns the
// cleanup restoring the previous wiring.
func setupTestCatalogue(t *testing.T) func() {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogue), 0o600))

	store := memory.NewConfigStore()
	require.NoError(t, store.Set("dataset.path", path))
	require.NoError(t, store.Set("snapshot.enabled", false))

	old := settingsService
	settingsService = services.NewSettingsService(store)
	return func() {
		settingsService = old
		datasetPath = ""
		filterJSON = false
		filterHandoff = ""
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestFilterCmd_Use(t *testing.T) {
	assert.Equal(t, "filter [query]", filterCmd.Use)
}

func TestFilterCmd_NoQueryListsEverything(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	out, err := execute(t, "filter")

	require.NoError(t, err)
	assert.Contains(t, out, "3 of 3 objects")
	assert.Contains(t, out, "SK-001")
	assert.Contains(t, out, "SK-003")
}

func TestFilterCmd_FacetQueryNarrowsMatches(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	out, err := execute(t, "filter", "material=stone")

	require.NoError(t, err)
	assert.Contains(t, out, "2 of 3 objects")
	assert.Contains(t, out, "SK-001")
	assert.NotContains(t, out, "SK-002")
}

func TestFilterCmd_SearchAndFacetCombine(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	out, err := execute(t, "filter", "tags=child&search=lion")

	require.NoError(t, err)
	assert.Contains(t, out, "1 of 3 objects")
	assert.Contains(t, out, "Lion sarcophagus")
}

func TestFilterCmd_NoMatches(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	out, err := execute(t, "filter", "material=bronze")

	require.NoError(t, err)
	assert.Contains(t, out, "No objects match")
}

func TestFilterCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	out, err := execute(t, "filter", "--json", "material=wood")

	require.NoError(t, err)
	assert.Contains(t, out, `"ID": "SK-002"`)
	assert.NotContains(t, out, "SK-001")
}

func TestFilterCmd_HandoffPrintsURL(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	out, err := execute(t, "filter", "--handoff", "gallery.html", "material=stone")

	require.NoError(t, err)
	assert.Contains(t, out, "gallery.html?")
	assert.Contains(t, out, "material=stone")
	assert.Contains(t, out, "ids=SK-001%2CSK-003")
}

func TestFilterCmd_IdsWhitelistRestricts(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	out, err := execute(t, "filter", "ids=SK-001,SK-002&material=stone")

	require.NoError(t, err)
	assert.Contains(t, out, "1 of 3 objects")
	assert.Contains(t, out, "SK-001")
}

func TestFilterCmd_DatasetFlagOverridesConfig(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "other.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`[{"inventory_number": "X-1", "title": "Other"}]`), 0o600))

	out, err := execute(t, "filter", "--dataset", path)

	require.NoError(t, err)
	assert.Contains(t, out, "X-1")
	assert.NotContains(t, out, "SK-001")
}

func TestFilterCmd_MissingDatasetFails(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	_, err := execute(t, "filter", "--dataset", "/nonexistent/data.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset")
}
