package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driven/auxiliary"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driven/dataset/file"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driven/dataset/remote"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driven"
	"github.com/antiquarium-labs/lapidarium/internal/core/services"
	"github.com/antiquarium-labs/lapidarium/internal/logger"
)

// session is one fully wired page instance: settings resolved, dataset
// ingested, facets registered and the query-seeded engine ready to serve.
type session struct {
	settings *domain.AppSettings
	engine   *services.Engine
	loader   driven.AuxiliaryLoader
	source   driven.RecordSource

	// whitelist is the decoded ids parameter, re-applied on reloads.
	whitelist []string
}

// buildSession wires a page from settings and an optional query string.
// With syncAux set the auxiliary datasets are fetched before the engine is
// seeded, so one-shot commands report externally-sourced facets too;
// interactive callers pass false and wire LoadAsync themselves.
func buildSession(ctx context.Context, query string, syncAux bool) (*session, error) {
	svc := settingsService
	if svc == nil {
		svc = services.NewSettingsService(nil)
	}
	settings, err := svc.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if datasetPath != "" {
		settings.Dataset.Path = datasetPath
	}

	source := newRecordSource(settings.Dataset.Path, settings.Dataset.IDField)
	records, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", settings.Dataset.Path, err)
	}
	logger.Info("CLI: loaded %d records from %s", len(records), settings.Dataset.Path)

	loader := auxiliary.NewLoader()
	registry := services.NewRegistry(settings, loader)
	engine := services.NewEngine(registry.Facets(), settings.Search.Fields)

	snap, ids := services.DecodeQuery(query, settings.Facets.Enabled)
	engine.SetData(records, whitelist(ids))

	if syncAux {
		for id, cfg := range settings.Auxiliary {
			if enabled(settings, id) {
				loader.Load(ctx, cfg)
				engine.RefreshFacet(id)
			}
		}
	}
	engine.ApplySnapshot(snap)

	return &session{
		settings:  settings,
		engine:    engine,
		loader:    loader,
		source:    source,
		whitelist: ids,
	}, nil
}

// newRecordSource picks the dataset adapter by path shape.
func newRecordSource(path, idField string) driven.RecordSource {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return remote.NewSource(path, idField)
	}
	return file.NewSource(path, idField)
}

func whitelist(ids []string) func(domain.Record) bool {
	if len(ids) == 0 {
		return nil
	}
	return services.WhitelistPredicate(ids)
}

func enabled(settings *domain.AppSettings, id domain.FacetID) bool {
	for _, e := range settings.Facets.Enabled {
		if e == id {
			return true
		}
	}
	return false
}

// loadGeometries reads the optional coordinates dataset. Failures degrade
// to an empty result; the plan view simply places nothing.
func (s *session) loadGeometries(ctx context.Context) []domain.Geometry {
	if s.settings.Dataset.CoordinatesPath == "" {
		return nil
	}
	src := file.NewGeometrySource(s.settings.Dataset.CoordinatesPath, s.settings.Dataset.IDField)
	geometries, err := src.Load(ctx)
	if err != nil {
		logger.Warn("CLI: coordinates dataset unavailable: %v", err)
		return nil
	}
	return geometries
}

// startAuxiliary kicks off the background loads for the enabled
// externally-sourced facets and refreshes each facet as its index lands.
func (s *session) startAuxiliary() {
	for id, cfg := range s.settings.Auxiliary {
		if !enabled(s.settings, id) {
			continue
		}
		facetID := id
		s.loader.LoadAsync(cfg, func(domain.SecondaryIndex) {
			s.engine.RefreshFacet(facetID)
		})
	}
}

// startWatch re-ingests the dataset on file changes, when configured and
// supported by the source. Blocks until the context is cancelled.
func (s *session) startWatch(ctx context.Context) {
	if !s.settings.Dataset.Watch {
		return
	}
	watcher, ok := s.source.(driven.RecordWatcher)
	if !ok {
		logger.Debug("CLI: dataset source does not support watching")
		return
	}
	go func() {
		err := watcher.Watch(ctx, func(records []domain.Record) {
			s.engine.SetData(records, whitelist(s.whitelist))
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("CLI: dataset watch stopped: %v", err)
		}
	}()
}
