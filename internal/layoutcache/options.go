package layoutcache

import (
	"time"

	"github.com/caseboard/caseboard/api/schemas"
	"github.com/caseboard/caseboard/internal/graphhash"
	"go.uber.org/zap"
)

// Default configuration values.
const (
	// DefaultMaxEntries bounds the number of cached layouts.
	DefaultMaxEntries = 50

	// DefaultTTL is how long a cached layout stays fresh.
	DefaultTTL = 10 * time.Minute
)

// HashFunc fingerprints a graph for keying. Defaults to graphhash.Hash.
type HashFunc func(*schemas.ResolvedGraph) (string, error)

type options struct {
	maxEntries      int
	ttl             time.Duration
	refreshOnAccess bool
	maxMemoryBytes  int64 // 0 = unlimited
	enableMetrics   bool
	onPressure      func()
	clock           func() time.Time
	hash            HashFunc
	logger          *zap.Logger
}

func defaultOptions() options {
	return options{
		maxEntries:    DefaultMaxEntries,
		ttl:           DefaultTTL,
		enableMetrics: true,
		clock:         time.Now,
		hash:          graphhash.Hash,
		logger:        zap.NewNop(),
	}
}

// Option is a functional option for configuring a Cache.
type Option func(*options)

// WithMaxEntries sets the maximum number of cached layouts.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxEntries = n
		}
	}
}

// WithTTL sets the default freshness window for entries.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithRefreshOnAccess makes a cache hit restart the entry's TTL window.
func WithRefreshOnAccess(enabled bool) Option {
	return func(o *options) { o.refreshOnAccess = enabled }
}

// WithMaxMemoryMB sets the hard memory budget. Zero means unlimited. Writes
// that would exceed the budget are dropped, never partially admitted.
func WithMaxMemoryMB(mb int) Option {
	return func(o *options) {
		if mb >= 0 {
			o.maxMemoryBytes = int64(mb) * 1024 * 1024
		}
	}
}

// WithMetrics toggles hit/miss/eviction accounting.
func WithMetrics(enabled bool) Option {
	return func(o *options) { o.enableMetrics = enabled }
}

// WithMemoryPressureCallback registers the hook HandleMemoryPressure invokes
// before emergency eviction.
func WithMemoryPressureCallback(fn func()) Option {
	return func(o *options) { o.onPressure = fn }
}

// WithClock injects a time source. Tests use this to simulate TTL expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithHashFunc overrides the fingerprint function, e.g. graphhash.HashFast
// for very large boards.
func WithHashFunc(fn HashFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.hash = fn
		}
	}
}

// WithLogger attaches a logger for cache-bypass and eviction diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
