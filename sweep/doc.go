// Package sweep evaluates f, f′, ∫₀ˣ f and a family of differintegrals D(a, ·)
// over one shared grid, the way a plotting front end consumes them.
//
// A Runner evaluates the orders of a Request either one after another or,
// with Request.Parallel, one goroutine per order through the concurrency
// effect. Both modes produce identical values. Series can be kept in a
// ristretto-backed Cache so repeated sweeps over the same grid skip the
// Grünwald–Letnikov sums.
//
// Runs log through the log effect when a handler is in scope and are silent
// otherwise. SettingsFromBinding, RequestFromBinding and RunnerFromBinding
// build everything from the binding effect (see package config).
package sweep
