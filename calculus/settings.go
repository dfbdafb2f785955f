package calculus

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/on-the-ground/fracdiff/special"
)

const (
	// DefaultDerivativeStep is the forward difference step h.
	// Smaller steps lose digits to cancellation; larger ones to truncation.
	DefaultDerivativeStep = 1e-4

	// DefaultIntegralIntervals is the trapezoid subinterval count.
	DefaultIntegralIntervals = 10000

	// DefaultDifferintegralSteps is the Grünwald–Letnikov step count N.
	// Truncation error falls roughly as 1/N; cost per point grows as N.
	DefaultDifferintegralSteps = 142

	// MaxDifferintegralSteps bounds N. Weight m needs Γ(m+1), which overflows
	// float64 past m = 141. Orders below −1 overflow sooner; see MaxFiniteSteps.
	MaxDifferintegralSteps = 142
)

// gammaOverflow is the smallest argument at which special.Gamma is +Inf.
const gammaOverflow = 143

// MaxFiniteSteps returns the largest N for which every Grünwald–Letnikov
// weight of order a is finite.
//
// For a > 0 that is MaxDifferintegralSteps. For a ≤ 0, weight m needs
// Γ(−a+m), so N must satisfy −a + N − 1 < 143; an order a < −1 evaluated
// with more steps degrades to ±Inf or NaN instead of failing.
func MaxFiniteSteps(a float64) int {
	if a > 0 {
		return MaxDifferintegralSteps
	}
	n := int(math.Ceil(gammaOverflow+1+a)) - 1
	return max(0, min(n, MaxDifferintegralSteps))
}

// ErrInvalidSettings wraps every Settings validation failure.
var ErrInvalidSettings = errors.New("calculus: invalid settings")

// Settings holds the numeric tunables of an Evaluator.
type Settings struct {
	DerivativeStep      float64 // forward difference step, > 0
	IntegralIntervals   int     // trapezoid subintervals, > 0
	DifferintegralSteps int     // GL steps, in [1, MaxDifferintegralSteps]
	PoleEpsilon         float64 // shift applied at gamma poles, > 0

	// BinomialTableSize memoizes binomial weights when > 0.
	BinomialTableSize uint32
}

// DefaultSettings returns the reference constants.
func DefaultSettings() Settings {
	return Settings{
		DerivativeStep:      DefaultDerivativeStep,
		IntegralIntervals:   DefaultIntegralIntervals,
		DifferintegralSteps: DefaultDifferintegralSteps,
		PoleEpsilon:         special.DefaultPoleEpsilon,
	}
}

// Validate reports every out-of-range field at once.
func (s Settings) Validate() error {
	var err error
	if !(s.DerivativeStep > 0) || math.IsInf(s.DerivativeStep, 0) {
		err = multierr.Append(err, fmt.Errorf("derivative step must be positive and finite, got %v", s.DerivativeStep))
	}
	if s.IntegralIntervals <= 0 {
		err = multierr.Append(err, fmt.Errorf("integral intervals must be positive, got %d", s.IntegralIntervals))
	}
	if s.DifferintegralSteps < 1 || s.DifferintegralSteps > MaxDifferintegralSteps {
		err = multierr.Append(err, fmt.Errorf("differintegral steps must be in [1, %d], got %d",
			MaxDifferintegralSteps, s.DifferintegralSteps))
	}
	if !(s.PoleEpsilon > 0) || s.PoleEpsilon >= 0.5 {
		err = multierr.Append(err, fmt.Errorf("pole epsilon must be in (0, 0.5), got %v", s.PoleEpsilon))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}
