package cache

import (
	"strconv"
	"sync"
	"time"

	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
)

// item is a single cached result with expiration
type item struct {
	rows    []domain.ComparisonRow
	expires time.Time
}

// ComparisonCache is a thread-safe in-memory TTL cache for computed
// comparison rows, keyed by the matching parameters. Matching the whole
// catalog is the expensive step between scrapes; the rows themselves are
// immutable, so entries can be shared.
type ComparisonCache struct {
	mu   sync.RWMutex
	data map[string]item
	ttl  time.Duration
}

// NewComparisonCache creates a cache. A zero ttl defaults to 5 minutes.
func NewComparisonCache(ttl time.Duration) *ComparisonCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ComparisonCache{
		data: make(map[string]item),
		ttl:  ttl,
	}
}

// Key derives the cache key for one set of matching parameters.
func Key(threshold float64, policy, anchorSource string) string {
	return strconv.FormatFloat(threshold, 'f', -1, 64) + "|" + policy + "|" + anchorSource
}

// Get returns the cached rows for key, if present and not expired.
func (c *ComparisonCache) Get(key string) ([]domain.ComparisonRow, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.data[key]
	if !ok || time.Now().After(it.expires) {
		return nil, false
	}
	return it.rows, true
}

// Set stores rows under key with the cache TTL.
func (c *ComparisonCache) Set(key string, rows []domain.ComparisonRow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = item{rows: rows, expires: time.Now().Add(c.ttl)}
}

// Invalidate drops every entry. Called when listings change.
func (c *ComparisonCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]item)
}

// Size returns the current number of entries (for debugging/monitoring)
func (c *ComparisonCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
