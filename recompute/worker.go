package recompute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/phasehull/hullcache"
	"github.com/katalvlaran/phasehull/stability"
)

// ErrNilCache is returned by New when no cache is given.
var ErrNilCache = errors.New("recompute: nil cache")

// Update is one published computation.
type Update struct {
	Generation uint64
	Key        hullcache.Key
	Diagram    *stability.Diagram
	Err        error
}

type job struct {
	gen uint64
	req hullcache.Request
}

// Worker computes diagrams in the background. Run must be called by exactly
// one goroutine; Submit, Generation and Updates are safe for concurrent use.
type Worker struct {
	cache *hullcache.Cache

	gen     atomic.Uint64
	mu      sync.Mutex
	pending *job
	wake    chan struct{}
	updates chan Update

	logger     *slog.Logger
	tracer     trace.Tracer
	published  prometheus.Counter
	superseded prometheus.Counter
}

// New returns a worker computing through cache.
func New(cache *hullcache.Cache, opts ...Option) (*Worker, error) {
	if cache == nil {
		return nil, ErrNilCache
	}
	o := gatherOptions(opts...)
	w := &Worker{
		cache:   cache,
		wake:    make(chan struct{}, 1),
		updates: make(chan Update, 1),
		logger:  o.logger,
		tracer:  o.tracer,
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phasehull",
			Subsystem: "recompute",
			Name:      "published_total",
			Help:      "Updates delivered to the updates channel",
		}),
		superseded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phasehull",
			Subsystem: "recompute",
			Name:      "superseded_total",
			Help:      "Computations dropped because a newer request arrived",
		}),
	}
	if o.registerer != nil {
		for _, c := range []prometheus.Collector{w.published, w.superseded} {
			if err := o.registerer.Register(c); err != nil {
				return nil, fmt.Errorf("New: register metrics: %w", err)
			}
		}
	}

	return w, nil
}

// Submit replaces any pending request with a copy of req and returns its
// generation. It never blocks.
func (w *Worker) Submit(req hullcache.Request) uint64 {
	j := &job{req: req.Clone()}
	w.mu.Lock()
	j.gen = w.gen.Add(1)
	w.pending = j
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}

	return j.gen
}

// Generation returns the newest submitted generation (0 before any Submit).
func (w *Worker) Generation() uint64 { return w.gen.Load() }

// Updates returns the channel carrying the latest published update.
func (w *Worker) Updates() <-chan Update { return w.updates }

// Published returns the counter of delivered updates.
func (w *Worker) Published() prometheus.Counter { return w.published }

// Superseded returns the counter of dropped computations.
func (w *Worker) Superseded() prometheus.Counter { return w.superseded }

// Run processes submissions until ctx ends and returns ctx.Err().
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.wake:
		}

		w.mu.Lock()
		j := w.pending
		w.pending = nil
		w.mu.Unlock()
		if j == nil {
			continue
		}

		u := w.compute(ctx, j)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if latest := w.gen.Load(); u.Generation != latest {
			w.superseded.Inc()
			w.logger.Debug("recompute superseded", "generation", u.Generation, "latest", latest)
			continue
		}
		w.publish(u)
	}
}

func (w *Worker) compute(ctx context.Context, j *job) Update {
	ctx, span := w.tracer.Start(ctx, "recompute.compute", trace.WithAttributes(
		attribute.Int64("phasehull.generation", int64(j.gen)),
		attribute.String("phasehull.system", j.req.System.String()),
		attribute.Int("phasehull.entries", len(j.req.Entries)),
	))
	defer span.End()

	u := Update{Generation: j.gen, Key: j.req.Key()}
	u.Diagram, u.Err = w.cache.Get(ctx, j.req)
	if u.Err == nil && u.Diagram.Err != nil {
		u.Err = u.Diagram.Err
	}
	if u.Err != nil {
		span.RecordError(u.Err)
		span.SetStatus(codes.Error, u.Err.Error())
		w.logger.Warn("recompute failed", "generation", j.gen, "system", j.req.System.String(), "err", u.Err)
	} else {
		span.SetAttributes(attribute.Int("phasehull.facets", len(u.Diagram.Facets)))
		w.logger.Debug("recompute done", "generation", j.gen, "facets", len(u.Diagram.Facets))
	}

	return u
}

// publish delivers u, replacing an update nobody has read yet.
func (w *Worker) publish(u Update) {
	for {
		select {
		case w.updates <- u:
			w.published.Inc()
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}
