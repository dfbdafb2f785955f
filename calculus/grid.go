package calculus

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is an ordered set of x-coordinates shared by every transform of a run.
type Grid []float64

// Arange returns start, start+step, … up to but excluding stop.
// A zero, NaN or wrong-signed step gives an empty grid.
func Arange(start, stop, step float64) Grid {
	if step == 0 || math.IsNaN(step) {
		return nil
	}
	n := math.Ceil((stop - start) / step)
	if !(n > 0) || math.IsInf(n, 0) {
		return nil
	}
	g := make(Grid, int(n))
	for i := range g {
		g[i] = start + float64(i)*step
	}
	return g
}

// Linspace returns n evenly spaced points from lo to hi inclusive.
func Linspace(lo, hi float64, n int) Grid {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return Grid{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Map applies fn to every point.
func (g Grid) Map(fn RealFunction) []float64 {
	out := make([]float64, len(g))
	for i, x := range g {
		out[i] = fn(x)
	}
	return out
}
