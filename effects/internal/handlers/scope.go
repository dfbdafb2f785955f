package handlers

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	effectmodel "github.com/on-the-ground/fracdiff/effects/internal/model"
)

// effectScope ties a dispatcher to its teardown. Close is idempotent.
//
// Sends hold mu for reading, Close takes it for writing before stopping the
// workers, so every accepted message is buffered before the final drain.
type effectScope[T any] struct {
	EffectId   string
	dispatcher WorkerDispatcher[T]
	closeFn    func()
	closeOnce  sync.Once
	mu         sync.RWMutex
	closed     bool
}

func (es *effectScope[T]) Close() {
	es.closeOnce.Do(func() {
		es.mu.Lock()
		es.closed = true
		es.mu.Unlock()
		es.closeFn()
		zap.L().Debug("effect scope closed", zap.String("effectId", es.EffectId))
	})
}

func newEffectScope[T any](
	dispatcher WorkerDispatcher[T],
	teardown func(),
) *effectScope[T] {
	return &effectScope[T]{
		EffectId:   uuid.New().String(),
		dispatcher: dispatcher,
		closeFn:    teardown,
	}
}

// send enqueues msg on the worker that owns it.
//
//   - Returns ErrEffectScopeClosed once Close has started or the workers stopped.
//   - Returns ctx.Err() if ctx ends while the queue is full.
func (es *effectScope[T]) send(ctx context.Context, msg T) error {
	es.mu.RLock()
	defer es.mu.RUnlock()
	if es.closed {
		return effectmodel.ErrEffectScopeClosed
	}
	select {
	case <-es.dispatcher.Done():
		return effectmodel.ErrEffectScopeClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-es.dispatcher.Done():
		return effectmodel.ErrEffectScopeClosed
	case es.dispatcher.GetChannelOf(msg) <- msg:
		return nil
	}
}

func logDroppedSend(effectId string, payload any, err error) {
	zap.L().Debug("effect dropped",
		zap.String("effectId", effectId),
		zap.Any("payload", payload),
		zap.Error(err),
	)
}
