package handlers

import (
	"context"

	effectmodel "github.com/on-the-ground/fracdiff/effects/internal/model"
)

// ResumableResult represents the result of a handled effect.
type ResumableResult[T any] struct {
	Value T
	Err   error
}

func ResumableResultFrom[R any](res R, err error) ResumableResult[R] {
	return ResumableResult[R]{Value: res, Err: err}
}

var _ effectmodel.Partitionable = ResumableEffectMessage[any, any]{}

type ResumableEffectMessage[P any, R any] struct {
	Payload  P
	ResumeCh chan ResumableResult[R]
}

func (rem ResumableEffectMessage[P, R]) PartitionKey() string {
	if p, ok := any(rem.Payload).(effectmodel.Partitionable); ok {
		return p.PartitionKey()
	}
	return ""
}

type ResumableHandler[P any, R any] struct {
	*effectScope[ResumableEffectMessage[P, R]]
}

// NewPartitionableResumableHandler answers payloads on config.NumWorkers
// workers partitioned by PartitionKey.
func NewPartitionableResumableHandler[P effectmodel.Partitionable, R any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, P) (R, error),
	teardown func(),
) ResumableHandler[P, R] {
	ctx, cancelFn := context.WithCancel(ctx)
	dispatcher := NewPartitionedQueue(ctx, config.NumWorkers, config.BufferSize, resume(handleFn))
	return ResumableHandler[P, R]{
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

// PerformEffect enqueues payload and returns the channel the result arrives on.
// The channel is closed after the result, or without one if ctx ends first
// or the scope is already closed.
func (rh ResumableHandler[P, R]) PerformEffect(ctx context.Context, payload P) <-chan ResumableResult[R] {
	// buffered so the worker never blocks on a caller that gave up
	resumeCh := make(chan ResumableResult[R], 1)
	msg := ResumableEffectMessage[P, R]{
		Payload:  payload,
		ResumeCh: resumeCh,
	}
	if err := rh.send(ctx, msg); err != nil {
		logDroppedSend(rh.EffectId, payload, err)
		close(resumeCh)
	}
	return resumeCh
}

func resume[P, R any](
	handleFn func(context.Context, P) (R, error),
) func(context.Context, ResumableEffectMessage[P, R]) {
	return func(ctx context.Context, msg ResumableEffectMessage[P, R]) {
		// ResumeCh has room for exactly this result
		msg.ResumeCh <- ResumableResultFrom(handleFn(ctx, msg.Payload))
		close(msg.ResumeCh)
	}
}
