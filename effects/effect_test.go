package effects_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/fracdiff/effects"
	effectmodel "github.com/on-the-ground/fracdiff/effects/internal/model"
)

type key string

func (k key) PartitionKey() string { return string(k) }

func TestResumableEffect_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.False(t, effects.HasEffectHandler(ctx, effectmodel.EffectBinding))

	torndown := false
	ctx, end := effects.WithResumablePartitionableEffectHandler[key, int](
		ctx,
		effectmodel.NewEffectScopeConfig(2, 2),
		effectmodel.EffectBinding,
		func(_ context.Context, k key) (int, error) { return len(k), nil },
		func() { torndown = true },
	)
	require.True(t, effects.HasEffectHandler(ctx, effectmodel.EffectBinding))

	res := <-effects.PerformResumableEffect[key, int](ctx, effectmodel.EffectBinding, "steps")
	require.NoError(t, res.Err)
	assert.Equal(t, 5, res.Value)

	outer := end()
	assert.True(t, torndown)
	assert.False(t, effects.HasEffectHandler(outer, effectmodel.EffectBinding))
}

func TestFireAndForgetEffect_TeardownAfterDrain(t *testing.T) {
	got := make(chan string, 4)
	ctx, end := effects.WithFireAndForgetEffectHandler(
		context.Background(),
		4,
		effectmodel.EffectLog,
		func(_ context.Context, msg string) { got <- msg },
		func() { close(got) },
	)
	effects.FireAndForgetEffect(ctx, effectmodel.EffectLog, "a")
	effects.FireAndForgetEffect(ctx, effectmodel.EffectLog, "b")
	end()

	var msgs []string
	for m := range got {
		msgs = append(msgs, m)
	}
	assert.Equal(t, []string{"a", "b"}, msgs)
}

func TestPerformWithoutHandlerPanics(t *testing.T) {
	assert.PanicsWithError(t,
		"failed to get value: no effect handler registered for this effect: fracdiff_effect_enum_concurrency",
		func() {
			effects.FireAndForgetEffect(context.Background(), effectmodel.EffectConcurrency, "x")
		},
	)
}

func TestWrongPayloadTypePanics(t *testing.T) {
	ctx, end := effects.WithFireAndForgetEffectHandler(
		context.Background(), 1, effectmodel.EffectLog,
		func(context.Context, string) {},
	)
	defer end()
	assert.Panics(t, func() {
		effects.FireAndForgetEffect(ctx, effectmodel.EffectLog, 42)
	})
}

func TestTooManyTeardownsPanics(t *testing.T) {
	assert.Panics(t, func() {
		effects.WithFireAndForgetEffectHandler(
			context.Background(), 1, effectmodel.EffectLog,
			func(context.Context, string) {},
			func() {}, func() {},
		)
	})
}
