package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("dataset.path", "/data/catalogue.json"))
	require.NoError(t, store.Set("search.debounce_ms", 150))
	require.NoError(t, store.Set("dataset.watch", true))
	require.NoError(t, store.Set("facets.enabled", []string{"material", "tags"}))

	assert.Equal(t, "/data/catalogue.json", store.GetString("dataset.path"))
	assert.Equal(t, 150, store.GetInt("search.debounce_ms"))
	assert.True(t, store.GetBool("dataset.watch"))
	assert.Equal(t, []string{"material", "tags"}, store.GetStringSlice("facets.enabled"))
}

func TestConfigStore_MissingKeysAreZero(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
	assert.Nil(t, store.GetStringSlice("nope"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("dataset.id_field", "inv_no"))
	require.NoError(t, store.Set("facets.max_menu_items", 25))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "inv_no", reloaded.GetString("dataset.id_field"))
	assert.Equal(t, 25, reloaded.GetInt("facets.max_menu_items"))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[dataset]\npath = \"data.json\"\nwatch = true\n\n[auxiliary.gender]\nurl = \"graves.json\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "data.json", store.GetString("dataset.path"))
	assert.True(t, store.GetBool("dataset.watch"))
	assert.Equal(t, "graves.json", store.GetString("auxiliary.gender.url"))
}

func TestConfigStore_Path(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}
