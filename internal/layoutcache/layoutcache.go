// Package layoutcache memoizes expensive layout computations. Keys are
// content-addressed (graph fingerprint + layout type); entries expire by TTL,
// are evicted least-recently-used at capacity, and are refused outright when
// a configured memory budget would be exceeded. The cache is a pure
// optimization layer: every failure path degrades to "recompute", never to an
// error surfaced to the UI.
package layoutcache

import (
	"strings"
	"sync"
	"time"

	"github.com/caseboard/caseboard/api/schemas"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// entry is a single cached layout. The cache owns its entries exclusively;
// callers only ever receive the data pointer, which they must treat as
// read-only.
type entry struct {
	data        *schemas.GraphData
	storedAt    time.Time
	ttl         time.Duration
	size        int64
	accessCount int64
	// lastAccessed is a monotonic sequence number, not wall-clock time, so
	// LRU order stays strict under same-millisecond access bursts.
	lastAccessed uint64
}

// Cache is a bounded TTL/LRU/memory-aware store of positioned graphs.
// Construct with New; the zero value is not usable.
type Cache struct {
	mu        sync.Mutex
	entries   map[string]*entry
	totalSize int64
	seq       uint64

	hits      int64
	misses    int64
	evictions int64

	opts options
	log  *zap.Logger
}

var _ schemas.GraphCache = (*Cache)(nil)

// New creates a Cache from the given options.
func New(opts ...Option) *Cache {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache{
		entries: make(map[string]*entry),
		opts:    o,
		log:     o.logger.Named("layoutcache"),
	}
}

// keyFor computes the cache key for (graph, layoutType). A hash failure is a
// bypass: ok is false and the caller treats the operation as a miss/no-op.
func (c *Cache) keyFor(g *schemas.ResolvedGraph, layoutType string) (string, bool) {
	h, err := c.opts.hash(g)
	if err != nil {
		c.log.Debug("hash failed, bypassing cache", zap.Error(err))
		return "", false
	}
	return h + ":" + layoutType, true
}

// estimateSize returns the serialized byte length of a result. Serialization
// is the simple, portable baseline; an incrementally maintained estimate is a
// possible optimization, not a correctness requirement.
func (c *Cache) estimateSize(data *schemas.GraphData) (int64, bool) {
	raw, err := json.Marshal(data)
	if err != nil {
		c.log.Debug("size estimate failed, bypassing cache", zap.Error(err))
		return 0, false
	}
	return int64(len(raw)), true
}

// Set stores a computed layout under the graph's fingerprint and layout type
// with the default TTL.
func (c *Cache) Set(g *schemas.ResolvedGraph, layoutType string, data *schemas.GraphData) {
	c.SetWithTTL(g, layoutType, data, c.opts.ttl)
}

// SetWithTTL stores a layout with a per-entry TTL override.
//
// If a finite memory budget is configured and admitting the entry would
// exceed it, the write is silently dropped; the budget is never exceeded,
// even transiently. Otherwise LRU entries are evicted until the entry count
// fits, any existing entry for the key is replaced, and the new entry starts
// with a zero access count.
func (c *Cache) SetWithTTL(g *schemas.ResolvedGraph, layoutType string, data *schemas.GraphData, ttl time.Duration) {
	key, ok := c.keyFor(g, layoutType)
	if !ok {
		return
	}
	size, ok := c.estimateSize(data)
	if !ok {
		return
	}
	if ttl <= 0 {
		ttl = c.opts.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var replaced int64
	if existing, exists := c.entries[key]; exists {
		replaced = existing.size
	}

	if c.opts.maxMemoryBytes > 0 && c.totalSize-replaced+size > c.opts.maxMemoryBytes {
		c.log.Debug("entry exceeds memory budget, dropped",
			zap.String("key", key),
			zap.Int64("size", size),
			zap.Int64("budget", c.opts.maxMemoryBytes))
		return
	}

	if existing, exists := c.entries[key]; exists {
		c.removeLocked(key, existing)
	}

	for len(c.entries) >= c.opts.maxEntries {
		if !c.evictLRULocked() {
			break
		}
	}

	c.entries[key] = &entry{
		data:         data,
		storedAt:     c.opts.clock(),
		ttl:          ttl,
		size:         size,
		lastAccessed: c.nextSeq(),
	}
	c.totalSize += size
}

// Get returns the cached layout for (graph, layoutType). Expired entries are
// removed on the spot and reported as misses; hits bump the entry's access
// bookkeeping and, when refresh-on-access is configured, restart its TTL.
func (c *Cache) Get(g *schemas.ResolvedGraph, layoutType string) (*schemas.GraphData, bool) {
	key, ok := c.keyFor(g, layoutType)
	if !ok {
		c.countMiss()
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, exists := c.entries[key]
	if !exists {
		c.countMissLocked()
		return nil, false
	}

	now := c.opts.clock()
	if now.Sub(e.storedAt) > e.ttl {
		c.removeLocked(key, e)
		c.countMissLocked()
		return nil, false
	}

	e.accessCount++
	e.lastAccessed = c.nextSeq()
	if c.opts.refreshOnAccess {
		e.storedAt = now
	}
	if c.opts.enableMetrics {
		c.hits++
	}
	return e.data, true
}

// Invalidate removes the one entry for (graph, layoutType).
func (c *Cache) Invalidate(g *schemas.ResolvedGraph, layoutType string) {
	key, ok := c.keyFor(g, layoutType)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, exists := c.entries[key]; exists {
		c.removeLocked(key, e)
	}
}

// InvalidateGraph removes every entry for the graph regardless of layout
// type. Used when the underlying entity data changes.
func (c *Cache) InvalidateGraph(g *schemas.ResolvedGraph) {
	h, err := c.opts.hash(g)
	if err != nil {
		return
	}
	prefix := h + ":"

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.removeLocked(key, e)
		}
	}
}

// InvalidateByLayoutType removes every entry computed by one layout
// algorithm. Used when the algorithm itself changes.
func (c *Cache) InvalidateByLayoutType(layoutType string) {
	suffix := ":" + layoutType

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if strings.HasSuffix(key, suffix) {
			c.removeLocked(key, e)
		}
	}
}

// Cleanup sweeps all currently expired entries and returns how many were
// removed. Get self-heals on expiry, so this is idle maintenance, not
// correctness-critical.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.clock()
	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.storedAt) > e.ttl {
			c.removeLocked(key, e)
			removed++
		}
	}
	return removed
}

// HandleMemoryPressure invokes the configured callback, then evicts LRU
// entries until at most half the current count remains. Coarser and faster
// than ordinary eviction; meant for emergency conditions signalled by the
// host.
func (c *Cache) HandleMemoryPressure() {
	if c.opts.onPressure != nil {
		c.opts.onPressure()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	target := len(c.entries) / 2
	for len(c.entries) > target {
		if !c.evictLRULocked() {
			break
		}
	}
	c.log.Debug("memory pressure handled", zap.Int("remaining", len(c.entries)))
}

// Metrics returns a read-only snapshot of cache counters.
func (c *Cache) Metrics() schemas.CacheMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := schemas.CacheMetrics{
		Hits:      c.hits,
		Misses:    c.misses,
		Entries:   len(c.entries),
		TotalSize: c.totalSize,
		Evictions: c.evictions,
	}
	if total := m.Hits + m.Misses; total > 0 {
		m.HitRate = float64(m.Hits) / float64(total)
	}
	if m.Entries > 0 {
		m.AverageSize = m.TotalSize / int64(m.Entries)
	}
	return m
}

// MemoryUsage returns the running byte total of live entries.
func (c *Cache) MemoryUsage() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalSize
}

// Len returns the live entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLRULocked removes the entry with the smallest lastAccessed sequence.
// Returns false when the cache is empty. Caller holds the lock.
func (c *Cache) evictLRULocked() bool {
	var (
		oldestKey string
		oldest    *entry
	)
	for key, e := range c.entries {
		if oldest == nil || e.lastAccessed < oldest.lastAccessed {
			oldestKey, oldest = key, e
		}
	}
	if oldest == nil {
		return false
	}
	c.removeLocked(oldestKey, oldest)
	if c.opts.enableMetrics {
		c.evictions++
	}
	return true
}

// removeLocked deletes an entry and reclaims its byte total. Caller holds
// the lock.
func (c *Cache) removeLocked(key string, e *entry) {
	delete(c.entries, key)
	c.totalSize -= e.size
}

func (c *Cache) nextSeq() uint64 {
	c.seq++
	return c.seq
}

func (c *Cache) countMiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.countMissLocked()
}

func (c *Cache) countMissLocked() {
	if c.opts.enableMetrics {
		c.misses++
	}
}
