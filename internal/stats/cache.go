package stats

import (
	"container/list"
	"sync"
	"time"

	v1 "github.com/aevon-lab/diarystats/internal/api/v1"
)

// SummaryCache is a thread-safe LRU of reports keyed by (username, year).
// Entries older than the TTL are treated as misses and dropped on access.
type SummaryCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	cache    map[cacheKey]*list.Element
	order    *list.List
	nowFn    func() time.Time
}

type cacheKey struct {
	username string
	year     int
}

type cacheEntry struct {
	key      cacheKey
	report   v1.Report
	storedAt time.Time
}

// NewSummaryCache creates a cache holding at most capacity reports for ttl each.
func NewSummaryCache(capacity int, ttl time.Duration) *SummaryCache {
	if capacity <= 0 {
		panic("stats: summary cache capacity must be > 0")
	}
	return &SummaryCache{
		capacity: capacity,
		ttl:      ttl,
		cache:    make(map[cacheKey]*list.Element),
		order:    list.New(),
		nowFn:    time.Now,
	}
}

// Get returns a copy of the cached report, if present and fresh.
func (c *SummaryCache) Get(username string, year int) (v1.Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{username: username, year: year}
	elem, exists := c.cache[key]
	if !exists {
		return v1.Report{}, false
	}

	entry := elem.Value.(*cacheEntry)
	if c.expired(entry) {
		delete(c.cache, key)
		c.order.Remove(elem)
		return v1.Report{}, false
	}

	// Move to front (most recently used)
	c.order.MoveToFront(elem)
	return cloneReport(entry.report), true
}

// Put stores a report, evicting the least recently used one if full.
func (c *SummaryCache) Put(report v1.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{username: report.Username, year: report.Year}
	now := c.nowFn()

	if elem, exists := c.cache[key]; exists {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		entry.report = cloneReport(report)
		entry.storedAt = now
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			entry := oldest.Value.(*cacheEntry)
			delete(c.cache, entry.key)
			c.order.Remove(oldest)
		}
	}

	entry := &cacheEntry{key: key, report: cloneReport(report), storedAt: now}
	c.cache[key] = c.order.PushFront(entry)
}

// Invalidate removes one report from the cache.
func (c *SummaryCache) Invalidate(username string, year int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{username: username, year: year}
	elem, exists := c.cache[key]
	if !exists {
		return
	}
	delete(c.cache, key)
	c.order.Remove(elem)
}

// Len reports the number of stored reports, fresh or not.
func (c *SummaryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *SummaryCache) expired(entry *cacheEntry) bool {
	return c.ttl > 0 && c.nowFn().Sub(entry.storedAt) >= c.ttl
}

// ByDecade is the only reference-typed field of a report.
func cloneReport(r v1.Report) v1.Report {
	if r.Summary.ByDecade != nil {
		r.Summary.ByDecade = append([]v1.DecadeCount(nil), r.Summary.ByDecade...)
	}
	return r
}
