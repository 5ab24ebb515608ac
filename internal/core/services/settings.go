package services

import (
	"fmt"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driven"
)

// SettingsService maps between the flat config store and the typed
// AppSettings. Missing or invalid entries fall back to defaults, so a
// brand-new install works with an empty config file.
type SettingsService struct {
	store driven.ConfigStore
}

// NewSettingsService creates a settings service over the config store.
func NewSettingsService(store driven.ConfigStore) *SettingsService {
	return &SettingsService{store: store}
}

// Get assembles the current settings, defaulting every absent key.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	if s.store == nil {
		return settings, nil
	}

	if v := s.store.GetString("dataset.path"); v != "" {
		settings.Dataset.Path = v
	}
	if v := s.store.GetString("dataset.id_field"); v != "" {
		settings.Dataset.IDField = v
	}
	if v := s.store.GetString("dataset.coordinates_path"); v != "" {
		settings.Dataset.CoordinatesPath = v
	}
	settings.Dataset.Watch = s.store.GetBool("dataset.watch")

	if v := s.store.GetStringSlice("search.fields"); len(v) > 0 {
		settings.Search.Fields = v
	}
	if v := s.store.GetInt("search.debounce_ms"); v > 0 {
		settings.Search.DebounceMillis = v
	}

	if v := s.store.GetStringSlice("facets.enabled"); len(v) > 0 {
		enabled := make([]domain.FacetID, 0, len(v))
		for _, id := range v {
			enabled = append(enabled, domain.FacetID(id))
		}
		settings.Facets.Enabled = enabled
	}
	if v := s.store.GetInt("facets.max_menu_items"); v > 0 {
		settings.Facets.MaxMenuItems = v
	}
	if v := s.store.GetString("facets.material_field"); v != "" {
		settings.Facets.MaterialField = v
	}
	if v := s.store.GetString("facets.type_field"); v != "" {
		settings.Facets.TypeField = v
	}
	if v := s.store.GetString("facets.type_fallback_field"); v != "" {
		settings.Facets.TypeFallbackField = v
	}
	if v := s.store.GetString("facets.tags_field"); v != "" {
		settings.Facets.TagsField = v
	}

	for _, id := range []domain.FacetID{domain.FacetGender, domain.FacetGoods} {
		prefix := "auxiliary." + string(id)
		url := s.store.GetString(prefix + ".url")
		if url == "" {
			continue
		}
		settings.Auxiliary[id] = domain.AuxiliarySettings{
			URL:    url,
			Entity: s.store.GetString(prefix + ".entity"),
			Field:  s.store.GetString(prefix + ".field"),
		}
	}

	if v := s.store.GetString("snapshot.dir"); v != "" {
		settings.Snapshot.Dir = v
	}
	if _, ok := s.store.Get("snapshot.enabled"); ok {
		settings.Snapshot.Enabled = s.store.GetBool("snapshot.enabled")
	}

	return settings, nil
}

// Save writes the settings back to the store.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.store == nil {
		return fmt.Errorf("save settings: %w", domain.ErrInvalidInput)
	}

	enabled := make([]string, 0, len(settings.Facets.Enabled))
	for _, id := range settings.Facets.Enabled {
		enabled = append(enabled, string(id))
	}

	kv := map[string]any{
		"dataset.path":               settings.Dataset.Path,
		"dataset.id_field":           settings.Dataset.IDField,
		"dataset.coordinates_path":   settings.Dataset.CoordinatesPath,
		"dataset.watch":              settings.Dataset.Watch,
		"search.fields":              settings.Search.Fields,
		"search.debounce_ms":         settings.Search.DebounceMillis,
		"facets.enabled":             enabled,
		"facets.max_menu_items":      settings.Facets.MaxMenuItems,
		"facets.material_field":      settings.Facets.MaterialField,
		"facets.type_field":          settings.Facets.TypeField,
		"facets.type_fallback_field": settings.Facets.TypeFallbackField,
		"facets.tags_field":          settings.Facets.TagsField,
		"snapshot.dir":               settings.Snapshot.Dir,
		"snapshot.enabled":           settings.Snapshot.Enabled,
	}
	for id, aux := range settings.Auxiliary {
		prefix := "auxiliary." + string(id)
		kv[prefix+".url"] = aux.URL
		kv[prefix+".entity"] = aux.Entity
		kv[prefix+".field"] = aux.Field
	}

	for key, value := range kv {
		if err := s.store.Set(key, value); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}
	return s.store.Save()
}
