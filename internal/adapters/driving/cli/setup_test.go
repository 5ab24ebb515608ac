package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driven/storage/memory"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/services"
)

const testGraves = `{
  "by_sarcophagus": {
    "SK-001": [{"gender": "female"}],
    "SK-002": [{"gender": "male"}, {"gender": "female"}]
  }
}`

func TestBuildSession_SeedsFromQuery(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	s, err := buildSession(context.Background(), "material=wood&search=coffin", true)
	require.NoError(t, err)

	filtered := s.engine.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "SK-002", filtered[0].ID)
	assert.Equal(t, "coffin", s.engine.Snapshot().Search)
}

func TestBuildSession_SyncLoadsAuxiliaryFacet(t *testing.T) {
	cleanup := setupTestCatalogue(t)
	defer cleanup()

	auxPath := filepath.Join(t.TempDir(), "graves.json")
	require.NoError(t, os.WriteFile(auxPath, []byte(testGraves), 0o600))

	store := memory.NewConfigStore()
	dataPath := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(testCatalogue), 0o600))
	require.NoError(t, store.Set("dataset.path", dataPath))
	require.NoError(t, store.Set("facets.enabled", []string{"material", "gender"}))
	require.NoError(t, store.Set("auxiliary.gender.url", auxPath))
	require.NoError(t, store.Set("auxiliary.gender.field", "gender"))
	settingsService = services.NewSettingsService(store)

	s, err := buildSession(context.Background(), "gender=female", true)
	require.NoError(t, err)

	ids := make([]string, 0, 2)
	for _, rec := range s.engine.Filtered() {
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []string{"SK-001", "SK-002"}, ids)

	rows := s.engine.FacetRows(domain.FacetGender, 15)
	require.NotEmpty(t, rows)
	assert.Equal(t, "female", rows[0].Key)
}

func TestBuildSession_NilSettingsServiceUsesDefaults(t *testing.T) {
	old := settingsService
	settingsService = nil
	defer func() {
		settingsService = old
		datasetPath = ""
	}()

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogue), 0o600))
	datasetPath = path

	s, err := buildSession(context.Background(), "", true)
	require.NoError(t, err)
	assert.Equal(t, 3, s.engine.Total())
}

func TestNewRecordSource_PicksAdapterByPath(t *testing.T) {
	local := newRecordSource("data.json", "inv")
	assert.NotNil(t, local)

	remoteSrc := newRecordSource("https://example.org/data.json", "inv")
	assert.NotNil(t, remoteSrc)
	assert.NotEqual(t, local, remoteSrc)
}

func TestLoadGeometries_UnconfiguredYieldsNothing(t *testing.T) {
	s := &session{settings: domain.DefaultAppSettings()}
	assert.Empty(t, s.loadGeometries(context.Background()))
}
