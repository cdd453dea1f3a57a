package internal

import (
	"cmp"
	"iter"
	"slices"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// IterSeq2Sorted yields the pairs of a sequence ordered by key. Later
// pairs replace earlier pairs with the same key.
func IterSeq2Sorted[K cmp.Ordered, V any](seq iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		collected := make(map[K]V)
		for key, val := range seq {
			collected[key] = val
		}

		keys := make([]K, 0, len(collected))
		for key := range collected {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		for _, key := range keys {
			if !yield(key, collected[key]) {
				return
			}
		}
	}
}
