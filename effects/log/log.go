package log

import (
	"context"

	"go.uber.org/zap"

	"github.com/on-the-ground/fracdiff/effects"
	effectmodel "github.com/on-the-ground/fracdiff/effects/internal/model"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for errors that still allow the run to continue.
	LogError LogLevel = "error"

	// LogDebug is used for per-series detail.
	LogDebug LogLevel = "debug"
)

// LogPayload is the payload of the log effect.
type LogPayload struct {
	Level   LogLevel
	Message string
	Fields  map[string]interface{}
}

// WithZapEffectHandler registers a fire-and-forget log effect handler backed by logger.
//
//   - bufferSize bounds how many messages may queue before LogEff blocks.
//   - The teardown syncs the logger.
//   - The context returned by the teardown should be used for further operations.
func WithZapEffectHandler(
	ctx context.Context,
	bufferSize int,
	logger *zap.Logger,
) (context.Context, func() context.Context) {
	return effects.WithFireAndForgetEffectHandler(
		ctx,
		bufferSize,
		effectmodel.EffectLog,
		func(ctx context.Context, payload LogPayload) {
			fields := make([]zap.Field, 0, len(payload.Fields))
			for k, v := range payload.Fields {
				fields = append(fields, zap.Any(k, v))
			}

			switch payload.Level {
			case LogInfo:
				logger.Info(payload.Message, fields...)
			case LogWarn:
				logger.Warn(payload.Message, fields...)
			case LogError:
				logger.Error(payload.Message, fields...)
			case LogDebug:
				logger.Debug(payload.Message, fields...)
			default:
				logger.Info(payload.Message, fields...)
			}
		},
		func() {
			// syncing stderr/stdout fails on some platforms; nothing to do about it
			_ = logger.Sync()
		},
	)
}

// EnsureEffectHandler returns ctx unchanged when a log handler is already in
// scope, and otherwise installs one that discards everything.
func EnsureEffectHandler(ctx context.Context) (context.Context, func() context.Context) {
	if effects.HasEffectHandler(ctx, effectmodel.EffectLog) {
		return ctx, func() context.Context { return ctx }
	}
	return WithZapEffectHandler(ctx, 1, zap.NewNop())
}

// LogEff performs a fire-and-forget log effect using the handler in ctx.
// Panics if no log handler is in scope. Entries performed after teardown, or
// on a cancelled ctx with a full buffer, are dropped.
func LogEff(ctx context.Context, level LogLevel, msg string, fields map[string]interface{}) {
	_ = effects.FireAndForgetEffect(ctx, effectmodel.EffectLog, LogPayload{
		Level:   level,
		Message: msg,
		Fields:  fields,
	})
}
