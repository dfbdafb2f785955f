package pure

import (
	"sync"
	"sync/atomic"
)

// Trie is a bounded, concurrency-safe map from key paths to values.
// Each level of the path is a sync.Map.
type Trie[O any] struct {
	generations [2]atomic.Pointer[sync.Map]
	head        atomic.Uint32
	size        atomic.Uint32
	maxSize     uint32
	rotateMu    sync.Mutex
}

// NewTrie creates a Trie whose active generation holds at most maxSize entries.
// It panics if maxSize is 0.
func NewTrie[O any](maxSize uint32) *Trie[O] {
	if maxSize == 0 {
		panic("maxSize should be greater than 0")
	}
	t := &Trie[O]{maxSize: maxSize}
	t.generations[0].Store(&sync.Map{})
	t.generations[1].Store(&sync.Map{})
	return t
}

// Load looks keys up in the active generation, then in the previous one.
// It panics on an empty key path.
func (t *Trie[O]) Load(keys []ComparableOrString) (O, bool) {
	if len(keys) == 0 {
		panic("trie: empty keys")
	}
	head := t.head.Load()
	for _, idx := range [2]uint32{head, 1 - head} {
		if v, ok := lookup(t.generations[idx].Load(), keys); ok {
			return v.(O), true
		}
	}
	var zero O
	return zero, false
}

// Store writes value under keys in the active generation, rotating
// generations first when the active one is full.
func (t *Trie[O]) Store(keys []ComparableOrString, value O) {
	if len(keys) == 0 {
		panic("trie: empty keys")
	}
	if t.size.Add(1) > t.maxSize {
		t.rotate()
	}
	m := descend(t.generations[t.head.Load()].Load(), keys)
	m.Store(keys[len(keys)-1], value)
}

// rotate drops the older generation and makes a fresh map active.
func (t *Trie[O]) rotate() {
	t.rotateMu.Lock()
	defer t.rotateMu.Unlock()
	if t.size.Load() <= t.maxSize {
		return
	}
	next := 1 - t.head.Load()
	t.generations[next].Store(&sync.Map{})
	t.head.Store(next)
	t.size.Store(1)
}

// lookup walks the path without creating nodes.
func lookup(m *sync.Map, keys []ComparableOrString) (any, bool) {
	last := len(keys) - 1
	for _, k := range keys[:last] {
		next, ok := m.Load(k)
		if !ok {
			return nil, false
		}
		m = next.(*sync.Map)
	}
	return m.Load(keys[last])
}

// descend walks the path, creating missing nodes, and returns the leaf map.
func descend(m *sync.Map, keys []ComparableOrString) *sync.Map {
	for _, k := range keys[:len(keys)-1] {
		next, _ := m.LoadOrStore(k, &sync.Map{})
		m = next.(*sync.Map)
	}
	return m
}
