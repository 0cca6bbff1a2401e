package hullcache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/phasehull/stability"
)

// DefaultSize is the default number of cached diagrams.
const DefaultSize = 64

// Option configures a Cache.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// WithLogger sets the structured logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRegisterer registers the cache metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// Cache is a bounded, concurrency-safe diagram cache.
type Cache struct {
	diagrams *lru.Cache[Key, *stability.Diagram]
	group    singleflight.Group
	metrics  *Metrics
	logger   *slog.Logger
}

// New returns a cache holding at most size diagrams.
func New(size int, opts ...Option) (*Cache, error) {
	if size < 1 {
		return nil, fmt.Errorf("New(%d): %w", size, ErrInvalidSize)
	}
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	diagrams, err := lru.New[Key, *stability.Diagram](size)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	c := &Cache{diagrams: diagrams, metrics: newMetrics(), logger: o.logger}
	if o.registerer != nil {
		if err = c.metrics.register(o.registerer, func() float64 { return float64(c.diagrams.Len()) }); err != nil {
			return nil, fmt.Errorf("New: register metrics: %w", err)
		}
	}

	return c, nil
}

// Metrics exposes the collectors, mainly for tests and dashboards.
func (c *Cache) Metrics() *Metrics { return c.metrics }

// Len returns the number of cached diagrams.
func (c *Cache) Len() int { return c.diagrams.Len() }

// Purge drops every cached diagram.
func (c *Cache) Purge() { c.diagrams.Purge() }

// Peek returns the cached diagram for key without touching recency.
func (c *Cache) Peek(key Key) (*stability.Diagram, bool) { return c.diagrams.Peek(key) }

// Get returns the diagram for req, computing it at most once per key even
// under concurrent misses. ctx only bounds the wait: a computation already
// started keeps running and fills the cache for later callers.
//
// Errors:
//   - ErrInvalidRequest wrapping the stability configuration error.
//   - ctx.Err() when ctx ends before the diagram is ready.
func (c *Cache) Get(ctx context.Context, req Request) (*stability.Diagram, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	key := req.Key()
	if d, ok := c.diagrams.Get(key); ok {
		c.metrics.Hits.Inc()
		return d, nil
	}
	c.metrics.Misses.Inc()

	ch := c.group.DoChan(strconv.FormatUint(uint64(key), 16), func() (any, error) {
		if d, ok := c.diagrams.Get(key); ok {
			return d, nil
		}
		c.metrics.Computations.Inc()
		start := time.Now()
		d, err := stability.Compute(req.Entries, req.System, req.Options()...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		elapsed := time.Since(start)
		c.metrics.Duration.Observe(elapsed.Seconds())
		c.diagrams.Add(key, d)
		c.logger.Debug("diagram computed",
			"key", fmt.Sprintf("%016x", uint64(key)),
			"system", req.System.String(),
			"entries", len(req.Entries),
			"facets", len(d.Facets),
			"elapsed", elapsed,
			"diagram_err", d.Err,
		)

		return d, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("Get: %w", res.Err)
		}
		return res.Val.(*stability.Diagram), nil
	}
}
