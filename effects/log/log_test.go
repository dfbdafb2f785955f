package log_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/on-the-ground/fracdiff/effects/log"
)

func TestLogEff_RoutesLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	ctx, endOfLog := log.WithZapEffectHandler(context.Background(), 8, zap.New(core))
	defer endOfLog()

	log.LogEff(ctx, log.LogDebug, "series evaluated", map[string]interface{}{"order": 0.5})
	log.LogEff(ctx, log.LogWarn, "non-finite value", nil)
	log.LogEff(ctx, log.LogError, "sweep failed", nil)
	log.LogEff(ctx, log.LogLevel("verbose"), "unknown level", nil)

	require.Eventually(t, func() bool { return logs.Len() == 4 }, time.Second, 5*time.Millisecond)

	entries := logs.AllUntimed()
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, 0.5, entries[0].ContextMap()["order"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[3].Level)
}

func TestLogEff_PanicsWithoutHandler(t *testing.T) {
	assert.PanicsWithError(t,
		"failed to get value: no effect handler registered for this effect: fracdiff_effect_enum_log",
		func() {
			log.LogEff(context.Background(), log.LogInfo, "nobody listens", nil)
		},
	)
}

func TestEnsureEffectHandler(t *testing.T) {
	ctx, end := log.EnsureEffectHandler(context.Background())
	assert.NotPanics(t, func() {
		log.LogEff(ctx, log.LogInfo, "discarded", nil)
	})
	end()

	core, logs := observer.New(zap.InfoLevel)
	outer, endOuter := log.WithZapEffectHandler(context.Background(), 1, zap.New(core))
	defer endOuter()

	inner, endInner := log.EnsureEffectHandler(outer)
	assert.Equal(t, outer, inner)
	log.LogEff(inner, log.LogInfo, "kept", nil)
	endInner()

	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestWithTestEffectHandler(t *testing.T) {
	ctx, end := log.WithTestEffectHandler(context.Background())
	defer end()
	assert.NotPanics(t, func() {
		log.LogEff(ctx, log.LogDebug, "console", nil)
	})
}
