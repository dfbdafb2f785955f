package special

import (
	"github.com/on-the-ground/fracdiff/pure"
)

// BinomialFunc computes the generalized binomial coefficient C(a, k).
type BinomialFunc func(a float64, k int) float64

// Binomial computes C(a, k) with Default.
func Binomial(a float64, k int) float64 {
	return Default.Binomial(a, k)
}

// Weights returns the first n Grünwald–Letnikov weights of order a with Default.
func Weights(a float64, n int) []float64 {
	return WeightsOf(Default.Binomial, a, n)
}

// Binomial computes the generalized binomial coefficient used as the m-th
// Grünwald–Letnikov weight.
//
// The sign of the order picks one of two algebraic forms:
//
//	a > 0:  (−1)^k · Γ(a+1) / (Γ(k+1) · Γ(a−k+1))
//	a ≤ 0:  Γ(−a+k) / (Γ(k+1) · Γ(−a))
//
// The second form is what lets one series serve fractional integrals; the
// first would be singular or carry the wrong sign there.
func (ap Approximator) Binomial(a float64, k int) float64 {
	kf := float64(k)
	if a > 0 {
		sign := 1.0
		if k%2 != 0 {
			sign = -1.0
		}
		return sign * ap.Gamma(a+1) / (ap.Gamma(kf+1) * ap.Gamma(a-kf+1))
	}
	return ap.Gamma(-a+kf) / (ap.Gamma(kf+1) * ap.Gamma(-a))
}

// Table returns a memoized ap.Binomial holding at most size entries per
// generation. It is safe for concurrent use.
func (ap Approximator) Table(size uint32) BinomialFunc {
	return pure.TableizeI2O1(ap.Binomial, size)
}

// NewBinomialTable is Default.Table.
func NewBinomialTable(size uint32) BinomialFunc {
	return Default.Table(size)
}

// WeightsOf returns binomial(a, m) for m = 0..n-1.
func WeightsOf(binomial BinomialFunc, a float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	w := make([]float64, n)
	for m := range w {
		w[m] = binomial(a, m)
	}
	return w
}
