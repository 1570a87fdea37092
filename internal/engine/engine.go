// Package engine runs the full pipeline: resolve entities into a graph,
// optionally filter it, then serve a positioned layout from the cache or
// compute one through the injected layout engine.
package engine

import (
	"context"
	"fmt"

	"github.com/caseboard/caseboard/api/schemas"
	"github.com/caseboard/caseboard/internal/graphhash"
	"github.com/caseboard/caseboard/internal/resolver"
	"github.com/caseboard/caseboard/internal/traversal"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Engine coordinates resolver, cache, and layout computation. It is injected
// with its collaborators, which keeps it decoupled and testable.
type Engine struct {
	resolver *resolver.Resolver
	cache    schemas.GraphCache
	layout   schemas.LayoutEngine
	flight   singleflight.Group
	log      *zap.Logger
}

// New creates an Engine. All dependencies are required except the logger.
func New(res *resolver.Resolver, cache schemas.GraphCache, layout schemas.LayoutEngine, logger *zap.Logger) (*Engine, error) {
	if res == nil || cache == nil || layout == nil {
		return nil, fmt.Errorf("cannot initialize engine with nil dependencies")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		resolver: res,
		cache:    cache,
		layout:   layout,
		log:      logger.Named("engine"),
	}, nil
}

// Result is the outcome of one Materialize call.
type Result struct {
	Data        *schemas.GraphData
	Diagnostics []schemas.Diagnostic
	CacheHit    bool
}

// Materialize resolves the collections, applies the filter, and returns a
// positioned graph, served from the cache when possible.
//
// Concurrent calls for the same (graph fingerprint, algorithm) are collapsed
// into one layout computation via singleflight, so check-then-populate is
// atomic from the caller's perspective. A cancelled computation returns
// ctx.Err() and never writes to the cache.
func (e *Engine) Materialize(ctx context.Context, cols schemas.EntityCollections, filter traversal.Filter, cfg schemas.LayoutConfig) (*Result, error) {
	runID := uuid.NewString()
	log := e.log.With(zap.String("run_id", runID))

	resolved := e.resolver.Resolve(cols)
	graph := filter.Apply(resolved.Graph)
	log.Debug("graph resolved",
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("edges", len(graph.Edges)),
		zap.Int("diagnostics", len(resolved.Diagnostics)))

	if data, ok := e.cache.Get(graph, cfg.Algorithm); ok {
		log.Debug("layout served from cache", zap.String("algorithm", cfg.Algorithm))
		return &Result{Data: data, Diagnostics: resolved.Diagnostics, CacheHit: true}, nil
	}

	data, err := e.computeAndStore(ctx, graph, cfg)
	if err != nil {
		return nil, err
	}
	return &Result{Data: data, Diagnostics: resolved.Diagnostics}, nil
}

// computeAndStore runs the layout engine and populates the cache, collapsing
// concurrent duplicate computations.
func (e *Engine) computeAndStore(ctx context.Context, g *schemas.ResolvedGraph, cfg schemas.LayoutConfig) (*schemas.GraphData, error) {
	fingerprint, err := graphhash.Hash(g)
	if err != nil {
		// Unserializable graph: compute without dedup or caching. The cache
		// would bypass the write anyway.
		e.log.Debug("hash failed, computing uncached", zap.Error(err))
		return e.layout.Compute(ctx, g, cfg)
	}

	key := fingerprint + ":" + cfg.Algorithm
	v, err, _ := e.flight.Do(key, func() (any, error) {
		// Re-check under the flight: a concurrent winner may have populated
		// the cache while this call was queued.
		if data, ok := e.cache.Get(g, cfg.Algorithm); ok {
			return data, nil
		}
		data, err := e.layout.Compute(ctx, g, cfg)
		if err != nil {
			return nil, err
		}
		e.cache.Set(g, cfg.Algorithm, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*schemas.GraphData), nil
}
