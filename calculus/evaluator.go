package calculus

import (
	"errors"

	"github.com/on-the-ground/fracdiff/special"
)

// ErrNilFunction is returned by New when f is nil.
var ErrNilFunction = errors.New("calculus: function is nil")

// Option adjusts the Settings an Evaluator is built with.
type Option func(*Settings)

// WithSettings replaces every setting.
func WithSettings(s Settings) Option {
	return func(dst *Settings) { *dst = s }
}

// WithDerivativeStep sets the forward difference step.
func WithDerivativeStep(h float64) Option {
	return func(s *Settings) { s.DerivativeStep = h }
}

// WithIntegralIntervals sets the trapezoid subinterval count.
func WithIntegralIntervals(n int) Option {
	return func(s *Settings) { s.IntegralIntervals = n }
}

// WithDifferintegralSteps sets the Grünwald–Letnikov step count.
func WithDifferintegralSteps(n int) Option {
	return func(s *Settings) { s.DifferintegralSteps = n }
}

// WithPoleEpsilon sets the shift applied at gamma poles.
func WithPoleEpsilon(eps float64) Option {
	return func(s *Settings) { s.PoleEpsilon = eps }
}

// WithBinomialTable memoizes binomial weights in a table of the given size.
// Zero disables memoization.
func WithBinomialTable(size uint32) Option {
	return func(s *Settings) { s.BinomialTableSize = size }
}

// Evaluator binds a RealFunction to a set of Settings and exposes f, f', I
// and D over scalars and grids. It is immutable and safe for concurrent use.
type Evaluator struct {
	f        RealFunction
	settings Settings
	binomial special.BinomialFunc
}

// New builds an Evaluator for f, starting from DefaultSettings.
func New(f RealFunction, opts ...Option) (*Evaluator, error) {
	if f == nil {
		return nil, ErrNilFunction
	}
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	ap := special.Approximator{Epsilon: s.PoleEpsilon}
	binomial := special.BinomialFunc(ap.Binomial)
	if s.BinomialTableSize > 0 {
		binomial = ap.Table(s.BinomialTableSize)
	}
	return &Evaluator{f: f, settings: s, binomial: binomial}, nil
}

// Settings returns the settings e was built with.
func (e *Evaluator) Settings() Settings {
	return e.settings
}

// Function returns the target function.
func (e *Evaluator) Function() RealFunction {
	return e.f
}

// F is f(x).
func (e *Evaluator) F(x float64) float64 {
	return e.f(x)
}

// FGrid is F over grid.
func (e *Evaluator) FGrid(grid Grid) []float64 {
	return grid.Map(e.f)
}

// FPrime is the forward difference derivative at x.
func (e *Evaluator) FPrime(x float64) float64 {
	return ForwardDifference(e.f, x, e.settings.DerivativeStep)
}

// FPrimeGrid is FPrime over grid.
func (e *Evaluator) FPrimeGrid(grid Grid) []float64 {
	return grid.Map(e.FPrime)
}

// Integral is the trapezoidal integral of f over [a, b].
func (e *Evaluator) Integral(a, b float64) float64 {
	return Trapezoid(e.f, a, b, e.settings.IntegralIntervals)
}

// IntegralGrid integrates from a to every point of grid.
func (e *Evaluator) IntegralGrid(a float64, grid Grid) []float64 {
	return grid.Map(func(b float64) float64 {
		return e.Integral(a, b)
	})
}

// Weights returns the binomial weights of order a for the configured step count.
func (e *Evaluator) Weights(a float64) []float64 {
	return special.WeightsOf(e.binomial, a, e.settings.DifferintegralSteps)
}

// Differintegral is D(a, x). D(0, x) == f(x) exactly.
func (e *Evaluator) Differintegral(a, x float64) float64 {
	if a == 0 {
		return e.f(x)
	}
	return GrunwaldLetnikov(e.f, a, x, e.Weights(a))
}

// DifferintegralGrid is Differintegral over grid. The weights are computed
// once and shared, so every element equals the scalar form.
func (e *Evaluator) DifferintegralGrid(a float64, grid Grid) []float64 {
	if a == 0 {
		return e.FGrid(grid)
	}
	weights := e.Weights(a)
	return grid.Map(func(x float64) float64 {
		return GrunwaldLetnikov(e.f, a, x, weights)
	})
}
