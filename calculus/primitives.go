package calculus

import "math"

// ForwardDifference is (f(x+h) − f(x)) / h. It is not adaptive; accuracy
// degrades near high curvature or discontinuities.
func ForwardDifference(f RealFunction, x, h float64) float64 {
	return (f(x+h) - f(x)) / h
}

// Trapezoid integrates f over [a, b] with the composite trapezoid rule on n
// equal subintervals. a == b yields 0.
func Trapezoid(f RealFunction, a, b float64, n int) float64 {
	dx := (b - a) / float64(n)
	sum := 0.0
	for i := 1; i <= n; i++ {
		sum += f(a+dx*float64(i)) + f(a+dx*float64(i-1))
	}
	return sum * dx / 2
}

// GrunwaldLetnikov evaluates the differintegral of order a at x on [0, x],
// using len(weights) steps. weights[m] must be the m-th binomial weight of
// order a (see special.Weights).
//
//   - a == 0 returns f(x) without touching weights.
//   - a > 0 divides the series by h^a; a < 0 multiplies it by h^(−a).
//   - Empty weights yield NaN.
func GrunwaldLetnikov(f RealFunction, a, x float64, weights []float64) float64 {
	if a == 0 {
		return f(x)
	}
	if len(weights) == 0 {
		return math.NaN()
	}

	h := x / float64(len(weights))
	sum := 0.0
	for m, w := range weights {
		sum += f(x-float64(m)*h) * w
	}

	if a > 0 {
		return sum / math.Pow(h, a)
	}
	return sum * math.Pow(h, -a)
}
