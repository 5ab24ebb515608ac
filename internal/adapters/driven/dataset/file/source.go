// Package file loads the primary exhibit dataset and the site-plan
// geometry from local JSON files. The dataset is a flat JSON array of
// objects; ingestion drops entries without an identifier.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driven"
	"github.com/antiquarium-labs/lapidarium/internal/logger"
)

// Ensure Source implements the interfaces.
var (
	_ driven.RecordSource  = (*Source)(nil)
	_ driven.RecordWatcher = (*Source)(nil)
)

// Source reads the dataset from a JSON file on disk.
type Source struct {
	path    string
	idField string
}

// NewSource creates a file-backed record source.
func NewSource(path, idField string) *Source {
	return &Source{path: path, idField: idField}
}

// Load reads and ingests the dataset file.
func (s *Source) Load(_ context.Context) ([]domain.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", s.path, domain.ErrDatasetUnavailable)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", s.path, domain.ErrInvalidInput)
	}

	records := domain.IngestRecords(raw, s.idField)
	logger.Info("Dataset: ingested %d of %d entries from %s", len(records), len(raw), s.path)
	return records, nil
}

// Watch re-ingests the dataset whenever the file is rewritten and hands
// the fresh records to onChange. It blocks until ctx is cancelled. A
// reload that fails keeps the previous records; the watch continues.
func (s *Source) Watch(ctx context.Context, onChange func([]domain.Record)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files by rename, which drops
	// a watch set on the file itself.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	target := filepath.Clean(s.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			records, err := s.Load(ctx)
			if err != nil {
				logger.Warn("Dataset: reload after %s failed: %v", event.Op, err)
				continue
			}
			logger.Debug("Dataset: reloaded %d records after %s", len(records), event.Op)
			onChange(records)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Dataset: watch error: %v", err)
		}
	}
}
