package binding

import (
	"context"
	"fmt"

	"github.com/on-the-ground/fracdiff/effects"
	effectmodel "github.com/on-the-ground/fracdiff/effects/internal/model"
)

// ErrKeyNotFound is returned when no scope binds the requested key.
var ErrKeyNotFound = fmt.Errorf("binding: key not found")

// Payload is the key looked up by the binding effect.
type Payload string

func (bp Payload) PartitionKey() string {
	return string(bp)
}

// WithEffectHandler registers a resumable, partitioned key/value lookup effect.
//
//   - bufferSize and numWorkers default to 1 when not positive.
//   - Keys missing from bindingMap are delegated to an enclosing binding scope.
//   - Returns a teardown; the context it returns should be used afterwards.
func WithEffectHandler(
	ctx context.Context,
	bufferSize, numWorkers int,
	bindingMap map[string]any,
) (context.Context, func() context.Context) {
	bh := bindingHandler{
		bindingMap: normalizeBindingMap(bindingMap),
	}
	return effects.WithResumablePartitionableEffectHandler[Payload, any](
		ctx,
		effectmodel.NewEffectScopeConfig(bufferSize, numWorkers),
		effectmodel.EffectBinding,
		bh.handle,
	)
}

// Effect looks key up through the binding effect in ctx. After the handler
// is torn down it returns an error wrapping effects.ErrEffectScopeClosed.
//
// Panics if no binding handler is in scope.
func Effect(ctx context.Context, key string) (val any, err error) {
	resultCh := effects.PerformResumableEffect[Payload, any](ctx, effectmodel.EffectBinding, Payload(key))
	select {
	case res, ok := <-resultCh:
		if ok {
			return res.Value, res.Err
		}
	case <-ctx.Done():
	}
	if err = ctx.Err(); err == nil {
		err = fmt.Errorf("binding: %w while looking up %q", effects.ErrEffectScopeClosed, key)
	}
	return nil, err
}

func normalizeBindingMap(bm map[string]any) map[string]any {
	if bm == nil {
		bm = make(map[string]any)
	}
	return bm
}

// delegateBindingEffect asks the enclosing scope, if there is one.
func delegateBindingEffect(upperCtx context.Context, key string) (res any, err error) {
	if !effects.HasEffectHandler(upperCtx, effectmodel.EffectBinding) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return Effect(upperCtx, key)
}

type bindingHandler struct {
	bindingMap map[string]any
}

// handle answers from the local map, falling back to the enclosing scope.
func (bh bindingHandler) handle(ctx context.Context, payload Payload) (any, error) {
	key := string(payload)
	v, ok := bh.bindingMap[key]
	if !ok {
		return delegateBindingEffect(ctx, key)
	}
	return v, nil
}
