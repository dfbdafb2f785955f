package special

import (
	"errors"
	"fmt"
	"math"
)

// lanczosG is the Lanczos shift g paired with lanczosCoefficients.
const lanczosG = 7.0

var lanczosCoefficients = [...]float64{
	0.99999999999980993,
	676.5203681218851,
	-1259.1392167224028,
	771.32342877765313,
	-176.61502916214059,
	12.507343278686905,
	-0.13857109526572012,
	9.9843695780195716e-6,
	1.5056327351493116e-7,
}

// DefaultPoleEpsilon is the shift applied to a non-positive integer argument
// before reflection. Γ(−n+ε) ≈ (−1)^n / (n!·ε), so the result is large but finite.
const DefaultPoleEpsilon = 1e-8

var (
	// ErrSingularInput is returned by GammaStrict for non-positive integers.
	ErrSingularInput = errors.New("special: gamma is singular at non-positive integers")

	// ErrNonFinite is returned by GammaStrict for NaN and ±Inf.
	ErrNonFinite = errors.New("special: argument is not finite")
)

// Approximator evaluates Γ and the binomial weights with a fixed pole shift.
// The zero value shifts poles by 0 and is not useful; use Default or set Epsilon.
type Approximator struct {
	Epsilon float64
}

// Default is the Approximator used by the package-level functions.
var Default = Approximator{Epsilon: DefaultPoleEpsilon}

// Gamma approximates Γ(z) with Default.
func Gamma(z float64) float64 {
	return Default.Gamma(z)
}

// GammaStrict approximates Γ(z) but reports poles and non-finite input as errors.
func GammaStrict(z float64) (float64, error) {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return math.NaN(), fmt.Errorf("%w: z=%v", ErrNonFinite, z)
	}
	if IsPole(z) {
		return math.NaN(), fmt.Errorf("%w: z=%v", ErrSingularInput, z)
	}
	return Default.Gamma(z), nil
}

// IsPole reports whether z is a non-positive integer.
func IsPole(z float64) bool {
	return z <= 0 && z == math.Trunc(z) && !math.IsInf(z, 0)
}

// Gamma approximates Γ(z).
//
// For z < 0.5 the reflection formula
//
//	Γ(z) = π / (sin(πz) · Γ(1−z))
//
// maps the argument onto the z ≥ 0.5 branch; 1−z > 0.5 there, so a single
// reflection step suffices. Non-positive integers are shifted by a.Epsilon
// first. NaN propagates.
func (a Approximator) Gamma(z float64) float64 {
	if z < 0.5 {
		if IsPole(z) {
			z += a.Epsilon
		}
		return math.Pi / (math.Sin(math.Pi*z) * lanczos(1-z))
	}
	return lanczos(z)
}

// lanczos is the z ≥ 0.5 branch.
func lanczos(z float64) float64 {
	z--
	x := lanczosCoefficients[0]
	for i := 1; i < len(lanczosCoefficients); i++ {
		x += lanczosCoefficients[i] / (z + float64(i))
	}
	t := z + lanczosG + 0.5
	return math.Sqrt(2*math.Pi) * math.Pow(t, z+0.5) * math.Exp(-t) * x
}
