package concurrency

import (
	"context"
	"sync"

	"github.com/on-the-ground/fracdiff/effects"
	effectmodel "github.com/on-the-ground/fracdiff/effects/internal/model"
	"github.com/on-the-ground/fracdiff/effects/log"
)

// WithConcurrencyEffectHandler installs a fire-and-forget concurrency effect handler.
//
// It allows ConcurrencyEff(ctx, ...) to spawn goroutines under a supervisor.
//
//   - Each child runs with its own context, cancelled when the parent ctx is.
//   - Panics in children are recovered and logged through the log effect,
//     so a log handler must be in scope.
//   - The returned teardown blocks until every spawned child has returned.
func WithConcurrencyEffectHandler(
	ctx context.Context,
	bufferSize int,
) (context.Context, func() context.Context) {
	sv := &supervisor{
		doneCh: make(chan struct{}),
	}
	go sv.watchParentCancel(ctx)

	return effects.WithFireAndForgetEffectHandler(
		ctx,
		bufferSize,
		effectmodel.EffectConcurrency,
		sv.spawnConcurrentChildren,
		func() {
			sv.waitChildren(ctx)
			close(sv.doneCh)
		},
	)
}

// EnsureEffectHandler returns ctx unchanged when a concurrency handler is
// already in scope, and otherwise installs one with the given buffer size.
func EnsureEffectHandler(ctx context.Context, bufferSize int) (context.Context, func() context.Context) {
	if effects.HasEffectHandler(ctx, effectmodel.EffectConcurrency) {
		return ctx, func() context.Context { return ctx }
	}
	return WithConcurrencyEffectHandler(ctx, bufferSize)
}

// ConcurrencyEff runs every fn in its own supervised goroutine.
// It returns once the functions are handed to the supervisor, not when they finish.
// On error none of fns was started: the handler is torn down or ctx ended.
func ConcurrencyEff(ctx context.Context, fns ...func(context.Context)) error {
	return effects.FireAndForgetEffect[ConcurrencyPayload](ctx, effectmodel.EffectConcurrency, fns)
}

type ConcurrencyPayload []func(context.Context)

// supervisor tracks the children spawned by one concurrency handler.
type supervisor struct {
	mu              sync.Mutex
	wg              sync.WaitGroup
	childrenCancels []context.CancelFunc
	doneCh          chan struct{}
}

// watchParentCancel cancels every child once the parent context is cancelled.
// It returns when either the parent is done or the handler is torn down.
func (s *supervisor) watchParentCancel(parentContext context.Context) {
	select {
	case <-parentContext.Done():
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, cancelFn := range s.childrenCancels {
			cancelFn()
		}
	case <-s.doneCh:
	}
}

// spawnConcurrentChildren starts each function in its own goroutine with its own context.
func (s *supervisor) spawnConcurrentChildren(
	parentContext context.Context,
	functions ConcurrencyPayload,
) {
	for _, fn := range functions {
		childCtx, cancel := context.WithCancel(context.Background())
		s.mu.Lock()
		s.childrenCancels = append(s.childrenCancels, cancel)
		s.mu.Unlock()
		if parentContext.Err() != nil {
			cancel()
		}

		s.wg.Add(1)
		go func(f func(context.Context), ctx context.Context) {
			defer s.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.LogEff(parentContext, log.LogError, "panic in child routine", map[string]interface{}{
						"error": r,
					})
				}
			}()
			f(ctx)
		}(fn, childCtx)
	}
}

// waitChildren blocks until all child goroutines complete, then releases their contexts.
func (s *supervisor) waitChildren(ctx context.Context) {
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cancelFn := range s.childrenCancels {
		cancelFn()
	}
	log.LogEff(ctx, log.LogDebug, "all routines finished", map[string]interface{}{
		"children": len(s.childrenCancels),
	})
}
