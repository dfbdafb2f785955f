package sweep

import (
	"context"

	"go.uber.org/multierr"

	"github.com/on-the-ground/fracdiff/calculus"
	"github.com/on-the-ground/fracdiff/configkeys"
	"github.com/on-the-ground/fracdiff/effects/binding"
)

// SettingsFromBinding reads the calculus tunables from the binding effect.
// Panics if no binding handler is in scope.
func SettingsFromBinding(ctx context.Context) (calculus.Settings, error) {
	var (
		s   calculus.Settings
		err error
	)
	s.DerivativeStep, err = getInto[float64](ctx, configkeys.ConfigCalculusDerivativeStep, err)
	s.IntegralIntervals, err = getInto[int](ctx, configkeys.ConfigCalculusIntegralIntervals, err)
	s.DifferintegralSteps, err = getInto[int](ctx, configkeys.ConfigCalculusDifferintegralSteps, err)
	s.PoleEpsilon, err = getInto[float64](ctx, configkeys.ConfigCalculusPoleEpsilon, err)
	s.BinomialTableSize, err = getInto[uint32](ctx, configkeys.ConfigCalculusBinomialTableSize, err)
	if err != nil {
		return calculus.Settings{}, err
	}
	return s, nil
}

// EvaluatorFromBinding builds an Evaluator for the configured catalog function.
func EvaluatorFromBinding(ctx context.Context) (*calculus.Evaluator, error) {
	name, err := binding.GetFromBindingEffect[string](ctx, configkeys.ConfigCalculusFunction)
	if err != nil {
		return nil, err
	}
	f, err := calculus.Lookup(name)
	if err != nil {
		return nil, err
	}
	settings, err := SettingsFromBinding(ctx)
	if err != nil {
		return nil, err
	}
	return calculus.New(f, calculus.WithSettings(settings))
}

// RequestFromBinding builds the configured sweep: Arange(start, stop, step)
// over Linspace(min_order, max_order, orders).
func RequestFromBinding(ctx context.Context) (Request, error) {
	var err error
	start, err := getInto[float64](ctx, configkeys.ConfigSweepStart, err)
	stop, err := getInto[float64](ctx, configkeys.ConfigSweepStop, err)
	step, err := getInto[float64](ctx, configkeys.ConfigSweepStep, err)
	minOrder, err := getInto[float64](ctx, configkeys.ConfigSweepMinOrder, err)
	maxOrder, err := getInto[float64](ctx, configkeys.ConfigSweepMaxOrder, err)
	orders, err := getInto[int](ctx, configkeys.ConfigSweepOrders, err)
	parallel, err := getInto[bool](ctx, configkeys.ConfigSweepParallel, err)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Grid:     calculus.Arange(start, stop, step),
		Orders:   calculus.Linspace(minOrder, maxOrder, orders),
		Parallel: parallel,
	}
	return req, req.Validate()
}

// RunnerFromBinding builds a Runner from EvaluatorFromBinding, with a cache
// when config.sweep.cache_size is positive. Close the Runner when done.
func RunnerFromBinding(ctx context.Context) (*Runner, error) {
	ev, err := EvaluatorFromBinding(ctx)
	if err != nil {
		return nil, err
	}

	var opts []Option
	bufferSize, err := binding.GetFromBindingEffect[int](ctx, configkeys.ConfigEffectConcurrencyBufferSize)
	if err == nil {
		opts = append(opts, WithConcurrencyBufferSize(bufferSize))
	}

	cacheSize, err := binding.GetFromBindingEffect[int](ctx, configkeys.ConfigSweepCacheSize)
	if err != nil {
		return nil, err
	}
	if cacheSize > 0 {
		name := binding.MustGetFromBindingEffect[string](ctx, configkeys.ConfigCalculusFunction)
		cache, err := NewCache(name, cacheSize)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCache(cache))
	}
	return NewRunner(ev, opts...), nil
}

// getInto reads key and appends any failure to errs.
func getInto[T any](ctx context.Context, key string, errs error) (T, error) {
	v, err := binding.GetFromBindingEffect[T](ctx, key)
	return v, multierr.Append(errs, err)
}
