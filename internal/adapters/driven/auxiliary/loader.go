// Package auxiliary lazily loads secondary datasets (graves, burial
// goods) and turns them into per-record value indexes for the joined
// facets. Sources are fetched at most once per page lifetime; concurrent
// requests for the same source share one in-flight fetch. Any failure
// degrades to an empty index, so a broken auxiliary file can never take
// a page down.
package auxiliary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driven"
	"github.com/antiquarium-labs/lapidarium/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.AuxiliaryLoader = (*Loader)(nil)

const (
	requestTimeout    = 30 * time.Second
	requestsPerSecond = 2.0
	burstSize         = 3
)

// Loader caches secondary indexes keyed by source URL.
type Loader struct {
	mu    sync.RWMutex
	cache map[string]domain.SecondaryIndex

	group   singleflight.Group
	client  *http.Client
	limiter *rate.Limiter
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{
		cache:   make(map[string]domain.SecondaryIndex),
		client:  &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// Get returns the cached index for a source URL and whether it has been
// loaded yet. It never blocks.
func (l *Loader) Get(url string) (domain.SecondaryIndex, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ix, ok := l.cache[url]
	return ix, ok
}

// Load fetches the source, blocking until the index is available. The
// singleflight group guarantees at most one fetch per source; every
// waiter gets the same index. The result is never nil.
func (l *Loader) Load(ctx context.Context, cfg domain.AuxiliarySettings) domain.SecondaryIndex {
	if ix, ok := l.Get(cfg.URL); ok {
		return ix
	}

	v, _, _ := l.group.Do(cfg.URL, func() (any, error) {
		ix := l.fetch(ctx, cfg)
		l.mu.Lock()
		l.cache[cfg.URL] = ix
		l.mu.Unlock()
		return ix, nil
	})
	return v.(domain.SecondaryIndex)
}

// LoadAsync starts a fetch in the background and invokes onReady with the
// index once resolved. onReady runs even when the index was already
// cached, so callers can wire it unconditionally.
func (l *Loader) LoadAsync(cfg domain.AuxiliarySettings, onReady func(domain.SecondaryIndex)) {
	go func() {
		ix := l.Load(context.Background(), cfg)
		if onReady != nil {
			onReady(ix)
		}
	}()
}

// fetch reads and parses one source. It never returns nil and never
// fails: problems are logged and yield an empty index.
func (l *Loader) fetch(ctx context.Context, cfg domain.AuxiliarySettings) domain.SecondaryIndex {
	data, err := l.read(ctx, cfg.URL)
	if err != nil {
		logger.Warn("Auxiliary: %v", err)
		return domain.SecondaryIndex{}
	}

	ix, err := ParseIndex(data, cfg.Entity, cfg.Field)
	if err != nil {
		logger.Warn("Auxiliary: parsing %s: %v", cfg.URL, err)
		return domain.SecondaryIndex{}
	}
	logger.Info("Auxiliary: loaded %s (%d records indexed)", cfg.URL, len(ix))
	return ix
}

func (l *Loader) read(ctx context.Context, url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		data, err := os.ReadFile(url)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", url, err)
		}
		return data, nil
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait for %s: %w", url, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ParseIndex decodes an auxiliary dataset payload. The payload is an
// envelope {"by_<entity>": {"<record id>": [{...}, ...]}}; entity selects
// the envelope key, empty means the first "by_"-prefixed key. field names
// the per-item value to index; a capitalized or lower-cased variant of
// the field name is accepted, mirroring the mixed-case source exports.
// Values are trimmed and de-duplicated per record, empties dropped.
func ParseIndex(data []byte, entity, field string) (domain.SecondaryIndex, error) {
	var envelope map[string]map[string][]map[string]any
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	by, ok := envelope["by_"+entity]
	if entity == "" || !ok {
		keys := make([]string, 0, len(envelope))
		for k := range envelope {
			if strings.HasPrefix(k, "by_") {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			return nil, fmt.Errorf("no by_ envelope key")
		}
		sort.Strings(keys)
		by = envelope[keys[0]]
	}

	ix := make(domain.SecondaryIndex, len(by))
	for id, items := range by {
		if id == "" {
			continue
		}
		var values []string
		seen := make(map[string]struct{})
		for _, item := range items {
			v := strings.TrimSpace(itemField(item, field))
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
		if len(values) > 0 {
			ix[id] = values
		}
	}
	return ix, nil
}

// itemField reads a scalar field trying the exact name, then lower-case,
// then with the first letter capitalized.
func itemField(item map[string]any, field string) string {
	for _, name := range fieldVariants(field) {
		if raw, ok := item[name]; ok {
			switch v := raw.(type) {
			case string:
				return v
			case float64, bool:
				return fmt.Sprintf("%v", v)
			}
		}
	}
	return ""
}

func fieldVariants(field string) []string {
	if field == "" {
		return nil
	}
	variants := []string{field}
	if lower := strings.ToLower(field); lower != field {
		variants = append(variants, lower)
	}
	capitalized := strings.ToUpper(field[:1]) + field[1:]
	if capitalized != field {
		variants = append(variants, capitalized)
	}
	return variants
}
