package schemas

import (
	"context"
	"time"
)

// -- Core Service Interfaces --

// LayoutEngine positions a resolved graph. The actual algorithm
// (force-directed, hierarchical, ...) is an external collaborator; the core
// treats it as an opaque function and only requires that a cancelled
// computation returns ctx.Err() without side effects.
type LayoutEngine interface {
	// Compute returns a positioned copy of the graph. It must not mutate g.
	Compute(ctx context.Context, g *ResolvedGraph, cfg LayoutConfig) (*GraphData, error)
}

// GraphCache is the contract of the layout cache. Implementations are pure
// optimization layers: every method is safe to call on malformed input and
// degrades to "always recompute" rather than returning errors to the UI.
type GraphCache interface {
	// Get returns the cached positioned graph for (graph fingerprint,
	// layout type), or ok=false on miss or expiry.
	Get(g *ResolvedGraph, layoutType string) (*GraphData, bool)
	// Set stores a computed result. Writes that would exceed a configured
	// memory budget are silently dropped.
	Set(g *ResolvedGraph, layoutType string, data *GraphData)
	// SetWithTTL stores a result with a per-entry TTL override.
	SetWithTTL(g *ResolvedGraph, layoutType string, data *GraphData, ttl time.Duration)
	// Invalidate removes the one entry for (graph, layout type).
	Invalidate(g *ResolvedGraph, layoutType string)
	// InvalidateGraph removes every entry for the graph, across layout types.
	InvalidateGraph(g *ResolvedGraph)
	// InvalidateByLayoutType removes every entry computed by one algorithm.
	InvalidateByLayoutType(layoutType string)
	// Cleanup sweeps expired entries. Idle maintenance; Get self-heals too.
	Cleanup() int
	// HandleMemoryPressure runs the configured callback, then evicts down to
	// half the current entry count.
	HandleMemoryPressure()
	// Metrics returns a read-only snapshot of cache counters.
	Metrics() CacheMetrics
}

// CacheMetrics is a side-effect-free snapshot of cache counters.
type CacheMetrics struct {
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRate     float64 `json:"hit_rate"`
	Entries     int     `json:"entries"`
	TotalSize   int64   `json:"total_size"`
	AverageSize int64   `json:"average_size"`
	Evictions   int64   `json:"evictions"`
}
