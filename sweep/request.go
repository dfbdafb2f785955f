package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/multierr"

	"github.com/on-the-ground/fracdiff/calculus"
)

var (
	// ErrEmptyGrid is returned when a Request has no grid points.
	ErrEmptyGrid = errors.New("sweep: grid is empty")

	// ErrNoOrders is returned when a Request has no orders.
	ErrNoOrders = errors.New("sweep: no orders to evaluate")

	// ErrNonFiniteInput is returned for NaN or ±Inf grid points or orders.
	ErrNonFiniteInput = errors.New("sweep: non-finite input")

	// ErrSeriesFailed is returned when evaluating one order panicked.
	ErrSeriesFailed = errors.New("sweep: series evaluation failed")
)

const (
	referencePoints = 50
	referenceStop   = 10.0
	referenceOrders = 30
)

// Request names the grid and the orders of one sweep.
type Request struct {
	Grid     calculus.Grid
	Orders   []float64
	Parallel bool
}

// DefaultRequest is the reference sweep: 50 points from 0.0001 in steps of
// 0.2 and 30 orders evenly spaced in [−1, 1].
func DefaultRequest() Request {
	return Request{
		Grid:   calculus.Arange(0.0001, referenceStop, referenceStop/referencePoints),
		Orders: calculus.Linspace(-1, 1, referenceOrders),
	}
}

// Validate reports every problem with r at once.
func (r Request) Validate() error {
	var err error
	if len(r.Grid) == 0 {
		err = multierr.Append(err, ErrEmptyGrid)
	}
	if len(r.Orders) == 0 {
		err = multierr.Append(err, ErrNoOrders)
	}
	for _, x := range r.Grid {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			err = multierr.Append(err, fmt.Errorf("%w: grid point %v", ErrNonFiniteInput, x))
			break
		}
	}
	for _, a := range r.Orders {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			err = multierr.Append(err, fmt.Errorf("%w: order %v", ErrNonFiniteInput, a))
			break
		}
	}
	return err
}

// Series is D(Order, ·) over the request grid.
type Series struct {
	Order  float64
	Values []float64
	Span   timespan.TimeSpan // wall time spent on this order
	Cached bool              // served from the Cache
}

// Result holds every transform of one sweep, aligned with Grid.
type Result struct {
	Grid       calculus.Grid
	Base       []float64 // f(x)
	Derivative []float64 // f′(x)
	Integral   []float64 // ∫₀ˣ f
	Series     []Series  // one per order, in request order
	Span       timespan.TimeSpan
}

// SeriesFor returns the series of order a, if the sweep evaluated it.
func (r *Result) SeriesFor(a float64) (Series, bool) {
	for _, s := range r.Series {
		if s.Order == a {
			return s, true
		}
	}
	return Series{}, false
}
