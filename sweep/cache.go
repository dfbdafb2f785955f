package sweep

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"
	ristretto "github.com/dgraph-io/ristretto/v2"

	"github.com/on-the-ground/fracdiff/calculus"
)

// ErrInvalidCacheSize is returned by NewCache for a non-positive size.
var ErrInvalidCacheSize = errors.New("sweep: cache size must be positive")

// Cache keeps evaluated series keyed by order, grid and the settings that
// shape D. The target function is not part of the key: namespace must
// identify it, and one Cache must not be shared by evaluators of different
// functions under the same namespace.
type Cache struct {
	namespace string
	cache     *ristretto.Cache[uint64, []float64]
}

// NewCache holds up to maxSeries series.
func NewCache(namespace string, maxSeries int) (*Cache, error) {
	if maxSeries <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCacheSize, maxSeries)
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []float64]{
		NumCounters:        int64(maxSeries) * 10,
		MaxCost:            int64(maxSeries),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sweep: creating cache: %w", err)
	}
	return &Cache{namespace: namespace, cache: cache}, nil
}

// Get returns a copy of the cached series, if present.
func (c *Cache) Get(order float64, grid calculus.Grid, settings calculus.Settings) ([]float64, bool) {
	values, ok := c.cache.Get(c.key(order, grid, settings))
	if !ok {
		return nil, false
	}
	return slices.Clone(values), true
}

// Put stores a copy of values. Admission is up to ristretto; a full cache may
// reject it.
func (c *Cache) Put(order float64, grid calculus.Grid, settings calculus.Settings, values []float64) {
	c.cache.Set(c.key(order, grid, settings), slices.Clone(values), 1)
	c.cache.Wait()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.cache.Clear()
}

// Close stops the cache's goroutines. The cache is unusable afterwards.
func (c *Cache) Close() {
	c.cache.Close()
}

func (c *Cache) key(order float64, grid calculus.Grid, settings calculus.Settings) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(c.namespace)

	var buf [8]byte
	writeUint64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	writeUint64(math.Float64bits(order))
	writeUint64(uint64(settings.DifferintegralSteps))
	writeUint64(math.Float64bits(settings.PoleEpsilon))
	writeUint64(uint64(len(grid)))
	for _, x := range grid {
		writeUint64(math.Float64bits(x))
	}
	return d.Sum64()
}
