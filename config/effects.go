package config

import (
	"context"

	"go.uber.org/zap"

	"github.com/on-the-ground/fracdiff/effects/binding"
	"github.com/on-the-ground/fracdiff/effects/concurrency"
	"github.com/on-the-ground/fracdiff/effects/log"
)

// WithEffectHandlers installs the log, binding and concurrency handlers sized
// by c. The binding handler serves c.Bindings().
//
// The returned teardown closes them innermost first, so children may still
// log while the concurrency handler drains.
func (c *Config) WithEffectHandlers(
	ctx context.Context,
	logger *zap.Logger,
) (context.Context, func()) {
	ctx, endOfLogHandler := log.WithZapEffectHandler(ctx, c.Effect.Log.BufferSize, logger)
	ctx, endOfBindingHandler := binding.WithEffectHandler(
		ctx,
		c.Effect.Binding.BufferSize,
		c.Effect.Binding.NumWorkers,
		c.Bindings(),
	)
	ctx, endOfConcurrencyHandler := concurrency.WithConcurrencyEffectHandler(ctx, c.Effect.Concurrency.BufferSize)

	return ctx, func() {
		endOfConcurrencyHandler()
		endOfBindingHandler()
		endOfLogHandler()
	}
}
