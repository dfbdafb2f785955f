// Package special implements the special functions behind the
// Grünwald–Letnikov differintegral: a Lanczos approximation of Γ(z) and the
// generalized (non-integer order) binomial coefficients built on it.
//
// Everything here is a pure function of its arguments. Accuracy is
// approximation grade: the Lanczos table (g = 7, n = 9) gives roughly 15
// significant digits for moderate arguments, which is plenty for weighting a
// finite series, but this is not a high-precision special-function library.
//
// # Poles
//
// Γ has poles at every non-positive integer. Gamma does not report them;
// it shifts the argument by a small epsilon (DefaultPoleEpsilon) and returns
// the resulting large finite value. That keeps binomial weights for integer
// orders well defined (they collapse to ≈0 instead of NaN). Use GammaStrict
// when a pole should be an error instead.
//
// # Range
//
// The Lanczos term t^(z+0.5) overflows float64 once z−1 exceeds 141, so
// Gamma(z) is +Inf for z ≥ 143. Binomial weights therefore stay finite for
// k ≤ 141 when |a| ≤ 1, which bounds the usable Grünwald–Letnikov step count.
package special
