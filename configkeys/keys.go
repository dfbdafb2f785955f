// Package configkeys names the binding keys under which configuration is
// exposed to the binding effect.
package configkeys

const (
	delimiter = "."

	ConfigPrefix = "config"

	ConfigCalculusPrefix = ConfigPrefix + delimiter + "calculus"

	ConfigCalculusFunction            = ConfigCalculusPrefix + delimiter + "function"
	ConfigCalculusDerivativeStep      = ConfigCalculusPrefix + delimiter + "derivative_step"
	ConfigCalculusIntegralIntervals   = ConfigCalculusPrefix + delimiter + "integral_intervals"
	ConfigCalculusDifferintegralSteps = ConfigCalculusPrefix + delimiter + "differintegral_steps"
	ConfigCalculusPoleEpsilon         = ConfigCalculusPrefix + delimiter + "pole_epsilon"
	ConfigCalculusBinomialTableSize   = ConfigCalculusPrefix + delimiter + "binomial_table_size"

	ConfigSweepPrefix = ConfigPrefix + delimiter + "sweep"

	ConfigSweepStep      = ConfigSweepPrefix + delimiter + "step"
	ConfigSweepStart     = ConfigSweepPrefix + delimiter + "start"
	ConfigSweepStop      = ConfigSweepPrefix + delimiter + "stop"
	ConfigSweepMinOrder  = ConfigSweepPrefix + delimiter + "min_order"
	ConfigSweepMaxOrder  = ConfigSweepPrefix + delimiter + "max_order"
	ConfigSweepOrders    = ConfigSweepPrefix + delimiter + "orders"
	ConfigSweepParallel  = ConfigSweepPrefix + delimiter + "parallel"
	ConfigSweepCacheSize = ConfigSweepPrefix + delimiter + "cache_size"

	ConfigEffectPrefix = ConfigPrefix + delimiter + "effect"

	ConfigEffectLogPrefix     = ConfigEffectPrefix + delimiter + "log"
	ConfigEffectLogBufferSize = ConfigEffectLogPrefix + delimiter + "buffer_size"

	ConfigEffectBindingPrefix     = ConfigEffectPrefix + delimiter + "binding"
	ConfigEffectBindingBufferSize = ConfigEffectBindingPrefix + delimiter + "buffer_size"
	ConfigEffectBindingNumWorkers = ConfigEffectBindingPrefix + delimiter + "num_workers"

	ConfigEffectConcurrencyPrefix     = ConfigEffectPrefix + delimiter + "concurrency"
	ConfigEffectConcurrencyBufferSize = ConfigEffectConcurrencyPrefix + delimiter + "buffer_size"
)

// All lists every leaf key, in declaration order.
var All = []string{
	ConfigCalculusFunction,
	ConfigCalculusDerivativeStep,
	ConfigCalculusIntegralIntervals,
	ConfigCalculusDifferintegralSteps,
	ConfigCalculusPoleEpsilon,
	ConfigCalculusBinomialTableSize,
	ConfigSweepStart,
	ConfigSweepStop,
	ConfigSweepStep,
	ConfigSweepMinOrder,
	ConfigSweepMaxOrder,
	ConfigSweepOrders,
	ConfigSweepParallel,
	ConfigSweepCacheSize,
	ConfigEffectLogBufferSize,
	ConfigEffectBindingBufferSize,
	ConfigEffectBindingNumWorkers,
	ConfigEffectConcurrencyBufferSize,
}
