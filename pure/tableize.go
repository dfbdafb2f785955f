package pure

import (
	"fmt"
)

// ComparableOrStringer is an input usable as a table key: either a
// comparable value or a fmt.Stringer.
type ComparableOrStringer any

// ComparableOrString is the key actually stored in a Trie.
type ComparableOrString any

// TableizeI1O1 memoizes a pure function of one argument.
func TableizeI1O1[I1 ComparableOrStringer, O1 any](
	pureFn func(I1) O1,
	maxTableSize uint32,
) func(I1) O1 {
	memo := NewTrie[O1](maxTableSize)
	return func(i1 I1) O1 {
		keys := []ComparableOrString{tableKey(i1)}
		if v, ok := memo.Load(keys); ok {
			return v
		}
		v := pureFn(i1)
		memo.Store(keys, v)
		return v
	}
}

// TableizeI2O1 memoizes a pure function of two arguments.
func TableizeI2O1[I1, I2 ComparableOrStringer, O1 any](
	pureFn func(I1, I2) O1,
	maxTableSize uint32,
) func(I1, I2) O1 {
	memo := NewTrie[O1](maxTableSize)
	return func(i1 I1, i2 I2) O1 {
		keys := []ComparableOrString{tableKey(i1), tableKey(i2)}
		if v, ok := memo.Load(keys); ok {
			return v
		}
		v := pureFn(i1, i2)
		memo.Store(keys, v)
		return v
	}
}

func tableKey(i ComparableOrStringer) ComparableOrString {
	if stringer, ok := i.(fmt.Stringer); ok {
		return stringer.String()
	}
	return i
}
