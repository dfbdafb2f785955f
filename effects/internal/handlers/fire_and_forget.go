package handlers

import (
	"context"
)

type FireAndForgetHandler[P any] struct {
	*effectScope[P]
}

// NewFireAndForgetHandler handles payloads on a single worker; callers never
// wait for the outcome.
func NewFireAndForgetHandler[P any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, P),
	teardown func(),
) FireAndForgetHandler[P] {
	ctx, cancelFn := context.WithCancel(ctx)
	dispatcher := NewSingleQueue(ctx, bufferSize, handleFn)
	return FireAndForgetHandler[P]{
		effectScope: newEffectScope(
			dispatcher,
			func() {
				cancelFn()
				dispatcher.Wait()
				teardown()
			},
		),
	}
}

// FireAndForgetEffect hands payload to the worker. A non-nil error means the
// payload was dropped: the scope is closed or ctx ended first.
func (ffh FireAndForgetHandler[P]) FireAndForgetEffect(ctx context.Context, payload P) error {
	err := ffh.send(ctx, payload)
	if err != nil {
		logDroppedSend(ffh.EffectId, payload, err)
	}
	return err
}
