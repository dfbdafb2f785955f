package pure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/on-the-ground/fracdiff/pure"
)

func TestTrie_BasicUsage(t *testing.T) {
	trie := pure.NewTrie[string](4)

	trie.Store([]pure.ComparableOrString{0.5, 3}, "final")

	val, ok := trie.Load([]pure.ComparableOrString{0.5, 3})
	assert.True(t, ok)
	assert.Equal(t, "final", val)

	// wrong key path
	_, ok = trie.Load([]pure.ComparableOrString{0.5, 4})
	assert.False(t, ok)
	_, ok = trie.Load([]pure.ComparableOrString{-0.5, 3})
	assert.False(t, ok)

	// overwrite existing
	trie.Store([]pure.ComparableOrString{0.5, 3}, "updated")
	val, ok = trie.Load([]pure.ComparableOrString{0.5, 3})
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestTrie_EmptyKeysPanics(t *testing.T) {
	trie := pure.NewTrie[int](2)
	assert.Panics(t, func() {
		trie.Load([]pure.ComparableOrString{})
	})
	assert.Panics(t, func() {
		trie.Store(nil, 1)
	})
}

func TestTrie_ZeroSizePanics(t *testing.T) {
	assert.Panics(t, func() {
		pure.NewTrie[int](0)
	})
}
