package sweep_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/fracdiff/sweep"
)

func TestDefaultRequest(t *testing.T) {
	req := sweep.DefaultRequest()
	require.NoError(t, req.Validate())
	require.Len(t, req.Grid, 50)
	require.Len(t, req.Orders, 30)
	assert.Equal(t, 0.0001, req.Grid[0])
	assert.Equal(t, -1.0, req.Orders[0])
	assert.Equal(t, 1.0, req.Orders[29])
	assert.False(t, req.Parallel)
}

func TestRequestValidate(t *testing.T) {
	err := sweep.Request{}.Validate()
	assert.ErrorIs(t, err, sweep.ErrEmptyGrid)
	assert.ErrorIs(t, err, sweep.ErrNoOrders)

	err = sweep.Request{Grid: []float64{1, math.NaN()}, Orders: []float64{math.Inf(1)}}.Validate()
	assert.ErrorIs(t, err, sweep.ErrNonFiniteInput)
	assert.ErrorContains(t, err, "grid point NaN")
	assert.ErrorContains(t, err, "order +Inf")
}
