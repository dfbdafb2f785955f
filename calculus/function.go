package calculus

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// RealFunction is a pure mapping from a real number to a real number.
type RealFunction func(float64) float64

// Identity is f(x) = x, the default target.
func Identity(x float64) float64 {
	return x
}

// ErrUnknownFunction is returned by Lookup for names not in the catalog.
var ErrUnknownFunction = errors.New("calculus: unknown function")

var catalog = map[string]RealFunction{
	"identity": Identity,
	"square":   func(x float64) float64 { return x * x },
	"cube":     func(x float64) float64 { return x * x * x },
	"sin":      math.Sin,
	"cos":      math.Cos,
	"exp":      math.Exp,
	"sqrt":     math.Sqrt,
}

// Lookup returns the catalog function registered under name.
// Matching ignores case and surrounding space.
func Lookup(name string) (RealFunction, error) {
	f, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return f, nil
}

// Names lists the catalog, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
