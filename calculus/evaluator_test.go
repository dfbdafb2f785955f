package calculus_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/fracdiff/calculus"
)

func newEvaluator(t *testing.T, f calculus.RealFunction, opts ...calculus.Option) *calculus.Evaluator {
	t.Helper()
	ev, err := calculus.New(f, opts...)
	require.NoError(t, err)
	return ev
}

func TestNew_Defaults(t *testing.T) {
	ev := newEvaluator(t, calculus.Identity)
	assert.Equal(t, calculus.DefaultSettings(), ev.Settings())
	assert.Equal(t, 142, ev.Settings().DifferintegralSteps)
	assert.Equal(t, 10000, ev.Settings().IntegralIntervals)
	assert.Equal(t, 1e-4, ev.Settings().DerivativeStep)
	assert.Equal(t, 1e-8, ev.Settings().PoleEpsilon)
}

func TestNew_RejectsBadInput(t *testing.T) {
	_, err := calculus.New(nil)
	assert.ErrorIs(t, err, calculus.ErrNilFunction)

	_, err = calculus.New(calculus.Identity, calculus.WithDifferintegralSteps(calculus.MaxDifferintegralSteps+1))
	assert.ErrorIs(t, err, calculus.ErrInvalidSettings)

	_, err = calculus.New(calculus.Identity, calculus.WithDerivativeStep(0))
	assert.ErrorIs(t, err, calculus.ErrInvalidSettings)
}

func TestSettingsValidate_ReportsEveryViolation(t *testing.T) {
	err := calculus.Settings{}.Validate()
	require.ErrorIs(t, err, calculus.ErrInvalidSettings)
	for _, part := range []string{"derivative step", "integral intervals", "differintegral steps", "pole epsilon"} {
		assert.ErrorContains(t, err, part)
	}
	assert.NoError(t, calculus.DefaultSettings().Validate())
}

func TestEvaluator_ReferenceScenarios(t *testing.T) {
	ev := newEvaluator(t, calculus.Identity)

	assert.Equal(t, 5.0, ev.Differintegral(0, 5))
	assert.Equal(t, 0.0, ev.Integral(0, 0))
	assert.InDelta(t, 50.0, ev.Integral(0, 10), 1e-9)
	assert.InDelta(t, 1.0, ev.FPrime(3), 1e-9)
}

func TestEvaluator_FirstOrderTracksDerivative(t *testing.T) {
	ev := newEvaluator(t, calculus.Identity)
	for _, x := range []float64{0.5, 1, 5, 9.8} {
		assert.InDeltaf(t, ev.FPrime(x), ev.Differintegral(1, x), 1e-5, "x=%v", x)
	}

	sin := newEvaluator(t, math.Sin)
	for _, x := range []float64{0.5, 1, 2} {
		h := x / float64(calculus.DefaultDifferintegralSteps)
		assert.InDeltaf(t, sin.FPrime(x), sin.Differintegral(1, x), h, "x=%v", x)
	}
}

func TestEvaluator_FirstOrderConvergesToDerivative(t *testing.T) {
	x := 2.0
	var prevErr = math.Inf(1)
	for _, n := range []int{10, 50, 142} {
		ev := newEvaluator(t, math.Sin, calculus.WithDifferintegralSteps(n))
		errN := math.Abs(ev.Differintegral(1, x) - ev.FPrime(x))
		assert.Lessf(t, errN, prevErr, "N=%d", n)
		prevErr = errN
	}
}

func TestEvaluator_MinusFirstOrderConvergesToIntegral(t *testing.T) {
	x := 4.0
	var prevErr = math.Inf(1)
	for _, n := range []int{10, 50, 142} {
		ev := newEvaluator(t, calculus.Identity, calculus.WithDifferintegralSteps(n))
		errN := math.Abs(ev.Differintegral(-1, x) - ev.Integral(0, x))
		assert.Lessf(t, errN, prevErr, "N=%d", n)
		prevErr = errN
	}

	ev := newEvaluator(t, calculus.Identity)
	assert.InEpsilon(t, ev.Integral(0, x), ev.Differintegral(-1, x), 0.01)

	sin := newEvaluator(t, math.Sin)
	assert.InDelta(t, sin.Integral(0, 2), sin.Differintegral(-1, 2), 0.02)
}

func TestEvaluator_HalfDerivativeOfIdentity(t *testing.T) {
	// D^½ x = 2·sqrt(x/π)
	ev := newEvaluator(t, calculus.Identity)
	for _, x := range []float64{0.5, 1, 4, 9} {
		want := 2 * math.Sqrt(x/math.Pi)
		assert.InEpsilonf(t, want, ev.Differintegral(0.5, x), 0.02, "x=%v", x)
	}
}

func TestEvaluator_HalfIntegralOfIdentity(t *testing.T) {
	// D^−½ x = x^{3/2} / Γ(5/2)
	ev := newEvaluator(t, calculus.Identity)
	for _, x := range []float64{0.5, 1, 4, 9} {
		want := math.Pow(x, 1.5) / math.Gamma(2.5)
		assert.InEpsilonf(t, want, ev.Differintegral(-0.5, x), 0.02, "x=%v", x)
	}
}

func TestEvaluator_GridFormsAreElementwise(t *testing.T) {
	ev := newEvaluator(t, math.Sin)
	grid := calculus.Arange(0.0001, 10, 0.2)

	base := ev.FGrid(grid)
	deriv := ev.FPrimeGrid(grid)
	integral := ev.IntegralGrid(0, grid)
	require.Len(t, base, len(grid))
	for i, x := range grid {
		assert.Equal(t, ev.F(x), base[i])
		assert.Equal(t, ev.FPrime(x), deriv[i])
		assert.Equal(t, ev.Integral(0, x), integral[i])
	}

	for _, a := range calculus.Linspace(-1, 1, 7) {
		series := ev.DifferintegralGrid(a, grid)
		require.Len(t, series, len(grid))
		for i, x := range grid {
			assert.Equalf(t, ev.Differintegral(a, x), series[i], "a=%v x=%v", a, x)
		}
	}
}

func TestEvaluator_BinomialTableDoesNotChangeResults(t *testing.T) {
	plain := newEvaluator(t, math.Cos)
	memo := newEvaluator(t, math.Cos, calculus.WithBinomialTable(512))
	grid := calculus.Linspace(0.1, 5, 11)
	for _, a := range []float64{-0.75, -0.2, 0.3, 0.9} {
		assert.Equal(t, plain.DifferintegralGrid(a, grid), memo.DifferintegralGrid(a, grid))
		// second pass is served from the table
		assert.Equal(t, plain.Weights(a), memo.Weights(a))
	}
}

func TestEvaluator_ZeroIsSilentlyDegenerate(t *testing.T) {
	ev := newEvaluator(t, calculus.Identity)
	assert.Equal(t, 0.0, ev.Differintegral(-0.5, 0))
	got := ev.Differintegral(0.5, 0)
	assert.True(t, math.IsNaN(got) || math.IsInf(got, 0))
}

func BenchmarkDifferintegralGrid(b *testing.B) {
	ev, err := calculus.New(calculus.Identity)
	require.NoError(b, err)
	grid := calculus.Arange(0.0001, 10, 0.2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ev.DifferintegralGrid(0.5, grid)
	}
}

func TestMaxFiniteSteps(t *testing.T) {
	cases := []struct {
		a    float64
		want int
	}{
		{1, calculus.MaxDifferintegralSteps},
		{0.5, calculus.MaxDifferintegralSteps},
		{0, calculus.MaxDifferintegralSteps},
		{-0.5, calculus.MaxDifferintegralSteps},
		{-1, 142},
		{-1.5, 142},
		{-2, 141},
		{-3, 140},
		{-200, 0},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, calculus.MaxFiniteSteps(c.a), "a=%v", c.a)
	}
}

func TestEvaluator_OrderBelowMinusOneOverflowsPastFiniteSteps(t *testing.T) {
	// D^−2 x = x³/6
	x := 3.0

	ev := newEvaluator(t, calculus.Identity)
	assert.True(t, math.IsInf(ev.Differintegral(-2, x), 1))

	bounded := newEvaluator(t, calculus.Identity, calculus.WithDifferintegralSteps(calculus.MaxFiniteSteps(-2)))
	got := bounded.Differintegral(-2, x)
	assert.False(t, math.IsInf(got, 0) || math.IsNaN(got))
	assert.InEpsilon(t, x*x*x/6, got, 0.05)

	for _, w := range bounded.Weights(-2) {
		assert.False(t, math.IsInf(w, 0) || math.IsNaN(w))
	}
}
