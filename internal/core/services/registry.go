package services

import (
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driven"
)

// Registry builds the facet definitions for a page. The table below is the
// single place a facet exists; adding one means adding an entry here and
// enabling it in settings, nothing else changes.
//
// Externally-sourced facets (gender, goods) close over the auxiliary
// loader. While their index is not yet loaded the extractor returns an
// empty result - it never throws and never blocks, uniformly for all such
// facets. The page wires the loader's ready signal to Engine.RefreshFacet.
type Registry struct {
	settings *domain.AppSettings
	loader   driven.AuxiliaryLoader
}

// NewRegistry creates a registry over the given settings. loader may be
// nil when no externally-sourced facet is enabled.
func NewRegistry(settings *domain.AppSettings, loader driven.AuxiliaryLoader) *Registry {
	return &Registry{settings: settings, loader: loader}
}

// Facets returns the definitions for the enabled facet ids, in the
// configured display order. Unknown ids are skipped.
func (r *Registry) Facets() []domain.Facet {
	out := make([]domain.Facet, 0, len(r.settings.Facets.Enabled))
	for _, id := range r.settings.Facets.Enabled {
		if f, ok := r.lookup(id); ok {
			out = append(out, f)
		}
	}
	return out
}

func (r *Registry) lookup(id domain.FacetID) (domain.Facet, bool) {
	fc := r.settings.Facets
	switch id {
	case domain.FacetMaterial:
		return domain.Facet{
			ID:      domain.FacetMaterial,
			Label:   "Material",
			Icon:    "🪨",
			Extract: r.scalarExtractor(fc.MaterialField),
		}, true

	case domain.FacetType:
		return domain.Facet{
			ID:      domain.FacetType,
			Label:   "Type",
			Icon:    "🏺",
			Extract: r.scalarExtractor(fc.TypeField, fc.TypeFallbackField),
		}, true

	case domain.FacetTags:
		return domain.Facet{
			ID:         domain.FacetTags,
			Label:      "Tags",
			Icon:       "🏷️",
			MultiValue: true,
			CaseFold:   true,
			Extract: func(rec domain.Record) []string {
				return domain.SplitDelimited(rec.Field(fc.TagsField), ",")
			},
		}, true

	case domain.FacetGender:
		return domain.Facet{
			ID:         domain.FacetGender,
			Label:      "Gender",
			Icon:       "⚥",
			MultiValue: true,
			Extract:    r.auxiliaryExtractor(domain.FacetGender),
		}, true

	case domain.FacetGoods:
		return domain.Facet{
			ID:         domain.FacetGoods,
			Label:      "Burial goods",
			Icon:       "🎁",
			MultiValue: true,
			Extract:    r.auxiliaryExtractor(domain.FacetGoods),
		}, true

	default:
		return domain.Facet{}, false
	}
}

// scalarExtractor reads the first non-empty of the given fields and
// normalizes it. Missing values yield an empty result, which an active
// constraint never matches.
func (r *Registry) scalarExtractor(fields ...string) func(domain.Record) []string {
	return func(rec domain.Record) []string {
		for _, field := range fields {
			if field == "" {
				continue
			}
			if v := domain.NormalizeScalar(rec.Field(field)); v != "" {
				return []string{v}
			}
		}
		return nil
	}
}

// auxiliaryExtractor joins a secondary index by record identifier. Until
// the index is loaded every record reads as having no value.
func (r *Registry) auxiliaryExtractor(id domain.FacetID) func(domain.Record) []string {
	return func(rec domain.Record) []string {
		if r.loader == nil {
			return nil
		}
		cfg, ok := r.settings.Auxiliary[id]
		if !ok {
			return nil
		}
		ix, loaded := r.loader.Get(cfg.URL)
		if !loaded {
			return nil
		}
		return ix.Values(rec.ID)
	}
}
