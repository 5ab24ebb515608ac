package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driven/storage/memory"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	// Verify defaults
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Dataset.Path, settings.Dataset.Path)
	assert.Equal(t, defaults.Dataset.IDField, settings.Dataset.IDField)
	assert.Equal(t, defaults.Search.Fields, settings.Search.Fields)
	assert.Equal(t, defaults.Search.DebounceMillis, settings.Search.DebounceMillis)
	assert.Equal(t, defaults.Facets.Enabled, settings.Facets.Enabled)
	assert.Equal(t, defaults.Facets.MaxMenuItems, settings.Facets.MaxMenuItems)
	assert.Equal(t, defaults.Snapshot.Enabled, settings.Snapshot.Enabled)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("dataset.path", "/data/catalogue.json")
	_ = store.Set("dataset.id_field", "inv_no")
	_ = store.Set("search.debounce_ms", 150)
	_ = store.Set("facets.enabled", []string{"material", "tags", "gender"})
	_ = store.Set("facets.max_menu_items", 25)
	_ = store.Set("auxiliary.gender.url", "graves.json")
	_ = store.Set("auxiliary.gender.entity", "grave")
	_ = store.Set("auxiliary.gender.field", "gender")

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "/data/catalogue.json", settings.Dataset.Path)
	assert.Equal(t, "inv_no", settings.Dataset.IDField)
	assert.Equal(t, 150, settings.Search.DebounceMillis)
	assert.Equal(t, []domain.FacetID{domain.FacetMaterial, domain.FacetTags, domain.FacetGender},
		settings.Facets.Enabled)
	assert.Equal(t, 25, settings.Facets.MaxMenuItems)
	assert.Equal(t, domain.AuxiliarySettings{
		URL:    "graves.json",
		Entity: "grave",
		Field:  "gender",
	}, settings.Auxiliary[domain.FacetGender])
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("search.debounce_ms", -5)
	_ = store.Set("facets.max_menu_items", 0)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Search.DebounceMillis, settings.Search.DebounceMillis)
	assert.Equal(t, defaults.Facets.MaxMenuItems, settings.Facets.MaxMenuItems)
}

func TestSettingsService_Get_AuxiliaryWithoutURLSkipped(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("auxiliary.gender.entity", "grave")

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.NotContains(t, settings.Auxiliary, domain.FacetGender)
}

func TestSettingsService_Get_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), settings)
}

func TestSettingsService_SaveAndGet_RoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Dataset.Path = "/data/exhibits.json"
	settings.Dataset.Watch = true
	settings.Facets.Enabled = []domain.FacetID{domain.FacetMaterial, domain.FacetGoods}
	settings.Auxiliary[domain.FacetGoods] = domain.AuxiliarySettings{
		URL:   "goods.json",
		Field: "category",
	}

	require.NoError(t, service.Save(settings))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.Dataset.Path, loaded.Dataset.Path)
	assert.True(t, loaded.Dataset.Watch)
	assert.Equal(t, settings.Facets.Enabled, loaded.Facets.Enabled)
	assert.Equal(t, settings.Auxiliary[domain.FacetGoods], loaded.Auxiliary[domain.FacetGoods])
}

func TestSettingsService_Save_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	err := service.Save(domain.DefaultAppSettings())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
