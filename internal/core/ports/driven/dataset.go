package driven

import (
	"context"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

// RecordSource loads the primary dataset. A failure here is fatal for the
// page: it is surfaced to the user, never silently swallowed.
type RecordSource interface {
	// Load fetches and ingests the dataset. Records without an identifier
	// are dropped during ingestion.
	Load(ctx context.Context) ([]domain.Record, error)
}

// RecordWatcher is implemented by record sources that can signal dataset
// changes (a rewritten file). onChange receives the freshly ingested
// records; delivery is eventually consistent with the same contract as the
// auxiliary ready signal.
type RecordWatcher interface {
	Watch(ctx context.Context, onChange func([]domain.Record)) error
}

// GeometrySource loads the site-plan geometry joined by record identifier.
// A missing or malformed geometry dataset degrades to an empty result.
type GeometrySource interface {
	Load(ctx context.Context) ([]domain.Geometry, error)
}
