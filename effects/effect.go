package effects

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/on-the-ground/fracdiff/effects/internal/handlers"
	effectmodel "github.com/on-the-ground/fracdiff/effects/internal/model"
	"github.com/on-the-ground/fracdiff/shared/helper"
)

// ErrNoEffectHandler is the panic value (wrapped) when an effect is performed
// in a context that has no handler for it.
var ErrNoEffectHandler = effectmodel.ErrNoEffectHandler

// ErrEffectScopeClosed is returned when an effect is performed on a handler
// that has been torn down.
var ErrEffectScopeClosed = effectmodel.ErrEffectScopeClosed

// WithResumablePartitionableEffectHandler registers a resumable effect handler for a given effect enum.
//
// This handler supports hash-based partitioning via PartitionKey(), so lookups
// for the same key are answered in order by the same worker.
//
// Usage:
//
//	ctx, end := WithResumablePartitionableEffectHandler(ctx, config, MyEffectEnum, handleFn)
//	defer end()
func WithResumablePartitionableEffectHandler[P effectmodel.Partitionable, R any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P) (R, error),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewPartitionableResumableHandler(ctx, config, handleFn, normalizeTeardown(teardown))
	ctxWith := context.WithValue(ctx, enum, handler)
	zap.L().Debug("created resumable effect handler",
		zap.String("effectId", handler.EffectId), zap.String("enum", string(enum)))

	return ctxWith, func() context.Context {
		handler.Close()
		return ctx
	}
}

// PerformResumableEffect sends a payload to the resumable effect handler and
// returns the channel its result arrives on.
//
// Panics if no handler is registered for the given effect enum.
func PerformResumableEffect[P effectmodel.Partitionable, R any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) <-chan handlers.ResumableResult[R] {
	handler := helper.MustGetTypedValue[handlers.ResumableHandler[P, R]](
		func() (any, error) {
			return getHandler(ctx, enum)
		},
	)
	return handler.PerformEffect(ctx, payload)
}

// WithFireAndForgetEffectHandler registers a fire-and-forget effect handler for a given effect enum.
//
// Suitable for one-shot effects like logging or spawning work.
// The optional teardown runs after the handler's worker has been stopped.
func WithFireAndForgetEffectHandler[P any](
	ctx context.Context,
	bufferSize int,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewFireAndForgetHandler(ctx, bufferSize, handleFn, normalizeTeardown(teardown))
	ctxWith := context.WithValue(ctx, enum, handler)
	zap.L().Debug("created fire/forget effect handler",
		zap.String("effectId", handler.EffectId), zap.String("enum", string(enum)))

	return ctxWith, func() context.Context {
		handler.Close()
		return ctx
	}
}

// FireAndForgetEffect hands payload to the handler registered for enum.
// It returns ErrEffectScopeClosed or ctx.Err() when the payload was dropped.
//
// Panics if no handler is registered for the given enum.
func FireAndForgetEffect[P any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) error {
	handler := helper.MustGetTypedValue[handlers.FireAndForgetHandler[P]](
		func() (any, error) {
			return getHandler(ctx, enum)
		},
	)
	return handler.FireAndForgetEffect(ctx, payload)
}

// HasEffectHandler reports whether ctx carries a handler for enum.
func HasEffectHandler(ctx context.Context, enum effectmodel.EffectEnum) bool {
	_, err := getHandler(ctx, enum)
	return err == nil
}

func getHandler(ctx context.Context, enum effectmodel.EffectEnum) (any, error) {
	raw := ctx.Value(enum)
	if raw == nil {
		return nil, fmt.Errorf("%w: %v", ErrNoEffectHandler, enum)
	}
	return raw, nil
}

// normalizeTeardown flattens optional teardown functions into a single callable.
//
// Accepts either 0 or 1 teardown functions. Panics if more than one is passed.
func normalizeTeardown(teardown []func()) func() {
	switch len(teardown) {
	case 1:
		return teardown[0]
	case 0:
		return func() {}
	default:
		panic("normalizeTeardown: only one or zero teardown functions allowed")
	}
}
