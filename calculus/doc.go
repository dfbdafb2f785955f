// Package calculus evaluates a real function together with its forward
// difference derivative, its trapezoidal integral and its Grünwald–Letnikov
// differintegral of real order.
//
// The order a selects the operator:
//
//	a > 0  fractional derivative
//	a < 0  fractional integral
//	a = 0  identity, D(0, x) == f(x)
//
// The differintegral on [0, x] is approximated by
//
//	h = x / N
//	D(a, x) ≈ h^(−a) · Σ_{m=0}^{N−1} C(a, m) · f(x − m·h)
//
// where C(a, m) are the weights from package special. The step count N,
// the derivative step and the trapezoid interval count are Settings. Cost is
// O(N) per point for the differintegral and O(n) per point for the integral;
// weights are computed once per order and shared across a Grid.
//
// Nothing here checks the order or the grid. Inputs outside the working
// domain (x ≤ 0, |a| > 1 with many steps) degrade silently to large values,
// ±Inf or NaN.
//
// Errors (sentinel):
//
//	– ErrNilFunction      New was given a nil RealFunction.
//	– ErrInvalidSettings  a Settings field is out of range.
//	– ErrUnknownFunction  Lookup found no function under that name.
package calculus
