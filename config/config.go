// Package config loads the numeric tunables, the sweep layout and the effect
// handler sizes from a file and the environment, and exposes them to the
// binding effect.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/on-the-ground/fracdiff/calculus"
	"github.com/on-the-ground/fracdiff/configkeys"
	"github.com/on-the-ground/fracdiff/special"
)

// EnvPrefix prefixes every environment override, e.g.
// FRACDIFF_CALCULUS_DIFFERINTEGRAL_STEPS.
const EnvPrefix = "FRACDIFF"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// CalculusConfig configures the evaluator.
type CalculusConfig struct {
	Function            string  `mapstructure:"function" yaml:"function"`                         // catalog name of the target function
	DerivativeStep      float64 `mapstructure:"derivative_step" yaml:"derivative_step"`           // forward difference step
	IntegralIntervals   int     `mapstructure:"integral_intervals" yaml:"integral_intervals"`     // trapezoid subintervals
	DifferintegralSteps int     `mapstructure:"differintegral_steps" yaml:"differintegral_steps"` // Grünwald–Letnikov steps
	PoleEpsilon         float64 `mapstructure:"pole_epsilon" yaml:"pole_epsilon"`                 // shift at gamma poles
	BinomialTableSize   uint32  `mapstructure:"binomial_table_size" yaml:"binomial_table_size"`   // 0 disables memoization
}

// SweepConfig configures the grid and the orders swept over it.
type SweepConfig struct {
	Start     float64 `mapstructure:"start" yaml:"start"`           // first grid point
	Stop      float64 `mapstructure:"stop" yaml:"stop"`             // grid end, exclusive
	Step      float64 `mapstructure:"step" yaml:"step"`             // grid spacing
	MinOrder  float64 `mapstructure:"min_order" yaml:"min_order"`   // lowest order
	MaxOrder  float64 `mapstructure:"max_order" yaml:"max_order"`   // highest order
	Orders    int     `mapstructure:"orders" yaml:"orders"`         // evenly spaced orders in [MinOrder, MaxOrder]
	Parallel  bool    `mapstructure:"parallel" yaml:"parallel"`     // one goroutine per order
	CacheSize int     `mapstructure:"cache_size" yaml:"cache_size"` // cached series; 0 disables the cache
}

type LogEffectConfig struct {
	BufferSize int `mapstructure:"buffer_size" yaml:"buffer_size"`
}

type BindingEffectConfig struct {
	BufferSize int `mapstructure:"buffer_size" yaml:"buffer_size"`
	NumWorkers int `mapstructure:"num_workers" yaml:"num_workers"`
}

type ConcurrencyEffectConfig struct {
	BufferSize int `mapstructure:"buffer_size" yaml:"buffer_size"`
}

// EffectConfig sizes the effect handlers.
type EffectConfig struct {
	Log         LogEffectConfig         `mapstructure:"log" yaml:"log"`
	Binding     BindingEffectConfig     `mapstructure:"binding" yaml:"binding"`
	Concurrency ConcurrencyEffectConfig `mapstructure:"concurrency" yaml:"concurrency"`
}

// Config wraps the entire configuration.
type Config struct {
	Calculus CalculusConfig `mapstructure:"calculus" yaml:"calculus"`
	Sweep    SweepConfig    `mapstructure:"sweep" yaml:"sweep"`
	Effect   EffectConfig   `mapstructure:"effect" yaml:"effect"`
}

// Default returns the reference run: the identity over [0.0001, 10) in steps
// of 0.2, with 30 orders in [−1, 1].
func Default() *Config {
	return &Config{
		Calculus: CalculusConfig{
			Function:            "identity",
			DerivativeStep:      calculus.DefaultDerivativeStep,
			IntegralIntervals:   calculus.DefaultIntegralIntervals,
			DifferintegralSteps: calculus.DefaultDifferintegralSteps,
			PoleEpsilon:         special.DefaultPoleEpsilon,
		},
		Sweep: SweepConfig{
			Start:    0.0001,
			Stop:     10,
			Step:     0.2,
			MinOrder: -1,
			MaxOrder: 1,
			Orders:   30,
		},
		Effect: EffectConfig{
			Log:         LogEffectConfig{BufferSize: 16},
			Binding:     BindingEffectConfig{BufferSize: 8, NumWorkers: 4},
			Concurrency: ConcurrencyEffectConfig{BufferSize: 8},
		},
	}
}

// Load reads the config file at filePath when it exists, then applies
// FRACDIFF_* environment overrides on top of Default. An empty filePath
// loads defaults and environment only.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	for key, value := range Default().Bindings() {
		v.SetDefault(viperKey(key), value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: reading %s: %w", filePath, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	return cfg, nil
}

// CalculusSettings converts the calculus section to evaluator settings.
func (c *Config) CalculusSettings() calculus.Settings {
	return calculus.Settings{
		DerivativeStep:      c.Calculus.DerivativeStep,
		IntegralIntervals:   c.Calculus.IntegralIntervals,
		DifferintegralSteps: c.Calculus.DifferintegralSteps,
		PoleEpsilon:         c.Calculus.PoleEpsilon,
		BinomialTableSize:   c.Calculus.BinomialTableSize,
	}
}

// Validate reports every violation at once.
func (c *Config) Validate() error {
	var err error
	if _, lookupErr := calculus.Lookup(c.Calculus.Function); lookupErr != nil {
		err = multierr.Append(err, lookupErr)
	}
	err = multierr.Append(err, c.CalculusSettings().Validate())

	s := c.Sweep
	if len(calculus.Arange(s.Start, s.Stop, s.Step)) == 0 {
		err = multierr.Append(err, fmt.Errorf("sweep grid [%v, %v) with step %v is empty", s.Start, s.Stop, s.Step))
	}
	if s.Orders < 1 {
		err = multierr.Append(err, fmt.Errorf("sweep orders must be positive, got %d", s.Orders))
	}
	if s.MinOrder > s.MaxOrder {
		err = multierr.Append(err, fmt.Errorf("sweep min order %v exceeds max order %v", s.MinOrder, s.MaxOrder))
	}
	if s.CacheSize < 0 {
		err = multierr.Append(err, fmt.Errorf("sweep cache size must not be negative, got %d", s.CacheSize))
	}

	e := c.Effect
	for name, size := range map[string]int{
		"log buffer size":         e.Log.BufferSize,
		"binding buffer size":     e.Binding.BufferSize,
		"binding worker count":    e.Binding.NumWorkers,
		"concurrency buffer size": e.Concurrency.BufferSize,
	} {
		if size < 1 {
			err = multierr.Append(err, fmt.Errorf("effect %s must be positive, got %d", name, size))
		}
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Bindings flattens c into binding keys (see package configkeys).
func (c *Config) Bindings() map[string]any {
	return map[string]any{
		configkeys.ConfigCalculusFunction:            c.Calculus.Function,
		configkeys.ConfigCalculusDerivativeStep:      c.Calculus.DerivativeStep,
		configkeys.ConfigCalculusIntegralIntervals:   c.Calculus.IntegralIntervals,
		configkeys.ConfigCalculusDifferintegralSteps: c.Calculus.DifferintegralSteps,
		configkeys.ConfigCalculusPoleEpsilon:         c.Calculus.PoleEpsilon,
		configkeys.ConfigCalculusBinomialTableSize:   c.Calculus.BinomialTableSize,

		configkeys.ConfigSweepStart:     c.Sweep.Start,
		configkeys.ConfigSweepStop:      c.Sweep.Stop,
		configkeys.ConfigSweepStep:      c.Sweep.Step,
		configkeys.ConfigSweepMinOrder:  c.Sweep.MinOrder,
		configkeys.ConfigSweepMaxOrder:  c.Sweep.MaxOrder,
		configkeys.ConfigSweepOrders:    c.Sweep.Orders,
		configkeys.ConfigSweepParallel:  c.Sweep.Parallel,
		configkeys.ConfigSweepCacheSize: c.Sweep.CacheSize,

		configkeys.ConfigEffectLogBufferSize:         c.Effect.Log.BufferSize,
		configkeys.ConfigEffectBindingBufferSize:     c.Effect.Binding.BufferSize,
		configkeys.ConfigEffectBindingNumWorkers:     c.Effect.Binding.NumWorkers,
		configkeys.ConfigEffectConcurrencyBufferSize: c.Effect.Concurrency.BufferSize,
	}
}

// viperKey strips the binding prefix: "config.sweep.step" → "sweep.step".
func viperKey(bindingKey string) string {
	return strings.TrimPrefix(bindingKey, configkeys.ConfigPrefix+".")
}
