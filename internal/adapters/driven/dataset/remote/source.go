// Package remote loads the exhibit dataset over HTTP, for installations
// that publish the catalogue behind a web server instead of shipping the
// file alongside the binary. Requests are rate limited so a watch-style
// poller cannot hammer the host.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driven"
	"github.com/antiquarium-labs/lapidarium/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.RecordSource = (*Source)(nil)

const (
	requestTimeout    = 30 * time.Second
	requestsPerSecond = 2.0
	burstSize         = 3
)

// Source fetches the dataset from an HTTP URL.
type Source struct {
	url     string
	idField string
	client  *http.Client
	limiter *rate.Limiter
}

// NewSource creates an HTTP-backed record source.
func NewSource(url, idField string) *Source {
	return &Source{
		url:     url,
		idField: idField,
		client:  &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// Load fetches and ingests the dataset.
func (s *Source) Load(ctx context.Context) ([]domain.Record, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", s.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset %s: %w", s.url, domain.ErrDatasetUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching dataset %s: status %d: %w",
			s.url, resp.StatusCode, domain.ErrDatasetUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", s.url, domain.ErrDatasetUnavailable)
	}

	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", s.url, domain.ErrInvalidInput)
	}

	records := domain.IngestRecords(raw, s.idField)
	logger.Info("Dataset: ingested %d of %d entries from %s", len(records), len(raw), s.url)
	return records, nil
}
