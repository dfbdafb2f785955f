package sweep

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rickb777/date/v2/timespan"

	"github.com/on-the-ground/fracdiff/calculus"
	"github.com/on-the-ground/fracdiff/effects/concurrency"
	"github.com/on-the-ground/fracdiff/effects/log"
)

// DefaultConcurrencyBufferSize sizes the concurrency handler a parallel Run
// installs when none is in scope.
const DefaultConcurrencyBufferSize = 8

// Option configures a Runner.
type Option func(*Runner)

// WithCache consults and fills c on every series.
func WithCache(c *Cache) Option {
	return func(r *Runner) { r.cache = c }
}

// WithConcurrencyBufferSize sizes the concurrency handler installed by a
// parallel Run when ctx carries none.
func WithConcurrencyBufferSize(n int) Option {
	return func(r *Runner) { r.concurrencyBufferSize = n }
}

// Runner evaluates Requests with one Evaluator.
type Runner struct {
	ev                    *calculus.Evaluator
	cache                 *Cache
	concurrencyBufferSize int
}

// NewRunner returns a Runner for ev.
func NewRunner(ev *calculus.Evaluator, opts ...Option) *Runner {
	r := &Runner{
		ev:                    ev,
		concurrencyBufferSize: DefaultConcurrencyBufferSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run is NewRunner(ev).Run(ctx, req).
func Run(ctx context.Context, ev *calculus.Evaluator, req Request) (*Result, error) {
	return NewRunner(ev).Run(ctx, req)
}

// Evaluator returns the evaluator r was built with.
func (r *Runner) Evaluator() *calculus.Evaluator {
	return r.ev
}

// Close releases the cache, if any.
func (r *Runner) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

// Run evaluates every transform of req.
//
//   - Returns the validation error of req before doing any work.
//   - Checks ctx between orders; a cancelled run returns ctx.Err() and no result.
//   - With req.Parallel, the concurrency handler in ctx is used, or one is
//     installed for the duration of the call.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx, endOfLogHandler := log.EnsureEffectHandler(ctx)
	defer endOfLogHandler()

	start := time.Now()
	log.LogEff(ctx, log.LogInfo, "sweep started", map[string]interface{}{
		"points":   len(req.Grid),
		"orders":   len(req.Orders),
		"parallel": req.Parallel,
		"cached":   r.cache != nil,
	})

	grid := slices.Clone(req.Grid)
	res := &Result{
		Grid:       grid,
		Base:       r.ev.FGrid(grid),
		Derivative: r.ev.FPrimeGrid(grid),
		Integral:   r.ev.IntegralGrid(0, grid),
		Series:     make([]Series, len(req.Orders)),
	}

	var err error
	if req.Parallel {
		err = r.runParallel(ctx, grid, req.Orders, res.Series)
	} else {
		err = r.runSequential(ctx, grid, req.Orders, res.Series)
	}
	if err != nil {
		log.LogEff(ctx, log.LogWarn, "sweep aborted", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	res.Span = timespan.BetweenTimes(start, time.Now())

	hits := 0
	for _, s := range res.Series {
		if s.Cached {
			hits++
		}
		log.LogEff(ctx, log.LogDebug, "series evaluated", map[string]interface{}{
			"order":    s.Order,
			"duration": s.Span.Duration().String(),
			"cached":   s.Cached,
		})
	}
	log.LogEff(ctx, log.LogInfo, "sweep finished", map[string]interface{}{
		"duration":   res.Span.Duration().String(),
		"cache_hits": hits,
	})
	return res, nil
}

func (r *Runner) runSequential(ctx context.Context, grid calculus.Grid, orders []float64, out []Series) error {
	for i, a := range orders {
		if err := ctx.Err(); err != nil {
			return err
		}
		out[i] = r.series(a, grid)
	}
	return nil
}

// runParallel spawns one child per order. Children write only their own
// slot of out and never log; they run without the caller's handlers.
func (r *Runner) runParallel(ctx context.Context, grid calculus.Grid, orders []float64, out []Series) error {
	ctx, endOfConcurrencyHandler := concurrency.EnsureEffectHandler(ctx, r.concurrencyBufferSize)
	defer endOfConcurrencyHandler()

	finished := make(chan struct{}, len(orders))
	children := make([]func(context.Context), len(orders))
	for i, a := range orders {
		children[i] = func(childCtx context.Context) {
			defer func() { finished <- struct{}{} }()
			if childCtx.Err() != nil {
				return
			}
			out[i] = r.series(a, grid)
		}
	}
	if err := concurrency.ConcurrencyEff(ctx, children...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}

	for range orders {
		select {
		case <-finished:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for i, s := range out {
		if s.Values == nil {
			return fmt.Errorf("%w: order %v", ErrSeriesFailed, orders[i])
		}
	}
	return nil
}

func (r *Runner) series(a float64, grid calculus.Grid) Series {
	start := time.Now()
	settings := r.ev.Settings()
	if r.cache != nil {
		if values, ok := r.cache.Get(a, grid, settings); ok {
			return Series{Order: a, Values: values, Span: timespan.BetweenTimes(start, time.Now()), Cached: true}
		}
	}

	values := r.ev.DifferintegralGrid(a, grid)
	if r.cache != nil {
		r.cache.Put(a, grid, settings, values)
	}
	return Series{Order: a, Values: values, Span: timespan.BetweenTimes(start, time.Now())}
}
