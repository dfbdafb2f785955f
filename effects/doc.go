// Package effects keeps the side effects of an evaluation run (logging,
// configuration lookup, goroutine management) out of the numerical code.
//
// A handler is registered into a context with a WithXxxEffectHandler call and
// removed by calling the returned teardown. Code holding the context performs
// the effect without knowing who handles it:
//
//	ctx, endOfLog := log.WithZapEffectHandler(ctx, 16, logger)
//	defer endOfLog()
//
//	log.LogEff(ctx, log.LogInfo, "sweep started", nil)
//
// Two delivery styles exist:
//   - resumable: the caller gets a channel carrying the handler's result
//     (used by the binding effect),
//   - fire-and-forget: the caller continues immediately
//     (used by the log and concurrency effects).
//
// Resumable handlers can be partitioned: payloads with the same
// PartitionKey are served in order by the same worker, chosen by xxhash.
//
// Performing an effect with no handler in scope is a programming error and
// panics with ErrNoEffectHandler.
package effects
