package sweep_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/fracdiff/calculus"
	"github.com/on-the-ground/fracdiff/sweep"
)

func TestNewCache_RejectsNonPositiveSize(t *testing.T) {
	_, err := sweep.NewCache("identity", 0)
	assert.ErrorIs(t, err, sweep.ErrInvalidCacheSize)
}

func TestCache_PutGet(t *testing.T) {
	cache, err := sweep.NewCache("identity", 16)
	require.NoError(t, err)
	defer cache.Close()

	grid := calculus.Grid{1, 2, 3}
	settings := calculus.DefaultSettings()

	_, ok := cache.Get(0.5, grid, settings)
	assert.False(t, ok)

	values := []float64{10, 20, 30}
	cache.Put(0.5, grid, settings, values)
	values[0] = -1

	got, ok := cache.Get(0.5, grid, settings)
	require.True(t, ok)
	assert.Equal(t, []float64{10, 20, 30}, got)

	got[1] = -1
	again, _ := cache.Get(0.5, grid, settings)
	assert.Equal(t, []float64{10, 20, 30}, again)
}

func TestCache_KeyCoversOrderGridAndSettings(t *testing.T) {
	cache, err := sweep.NewCache("identity", 16)
	require.NoError(t, err)
	defer cache.Close()

	grid := calculus.Grid{1, 2, 3}
	settings := calculus.DefaultSettings()
	cache.Put(0.5, grid, settings, []float64{1, 2, 3})

	_, ok := cache.Get(0.25, grid, settings)
	assert.False(t, ok, "order")

	_, ok = cache.Get(0.5, calculus.Grid{1, 2, 4}, settings)
	assert.False(t, ok, "grid")

	fewer := settings
	fewer.DifferintegralSteps = 50
	_, ok = cache.Get(0.5, grid, fewer)
	assert.False(t, ok, "steps")

	other, err := sweep.NewCache("sin", 16)
	require.NoError(t, err)
	defer other.Close()
	other.Put(0.5, grid, settings, []float64{9, 9, 9})
	got, ok := cache.Get(0.5, grid, settings)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, got)

	cache.Clear()
	_, ok = cache.Get(0.5, grid, settings)
	assert.False(t, ok)
}
