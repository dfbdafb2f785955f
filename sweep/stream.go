package sweep

import (
	"context"
	"slices"

	"github.com/on-the-ground/fracdiff/effects/concurrency"
	"github.com/on-the-ground/fracdiff/effects/log"
	"github.com/on-the-ground/fracdiff/shared/orderedbuffer"
)

// Stream evaluates the orders of req concurrently and yields each Series in
// request order as soon as it and every earlier order are done. Only the
// differintegral series are produced; req.Parallel is ignored.
//
// The channel is closed after the last series, or early when ctx is
// cancelled or an order fails; compare the count received with len(req.Orders).
func (r *Runner) Stream(ctx context.Context, req Request) (<-chan Series, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	grid := slices.Clone(req.Grid)
	buf := orderedbuffer.NewOrderedBuffer[Series](len(req.Orders))

	ctx, endOfLogHandler := log.EnsureEffectHandler(ctx)
	ctx, endOfConcurrencyHandler := concurrency.EnsureEffectHandler(ctx, r.concurrencyBufferSize)

	log.LogEff(ctx, log.LogInfo, "sweep stream started", map[string]interface{}{
		"points": len(grid),
		"orders": len(req.Orders),
	})

	children := make([]func(context.Context), len(req.Orders))
	for i, a := range req.Orders {
		children[i] = func(childCtx context.Context) {
			inserted := false
			defer func() {
				if !inserted {
					buf.Close()
				}
			}()
			if childCtx.Err() != nil {
				return
			}
			inserted = buf.Insert(i, r.series(a, grid)) == nil
		}
	}
	if err := concurrency.ConcurrencyEff(ctx, children...); err != nil {
		buf.Close()
	}

	go func() {
		select {
		case <-buf.Done():
		case <-ctx.Done():
			buf.Close()
		}
		endOfConcurrencyHandler()
		log.LogEff(ctx, log.LogInfo, "sweep stream finished", map[string]interface{}{
			"cancelled": ctx.Err() != nil,
		})
		endOfLogHandler()
	}()
	return buf.Source(), nil
}
