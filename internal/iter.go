package internal

import (
	"iter"
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

// IterSeq2Map converts the values of a dual-return iterator, dropping pairs
// the conversion rejects.
func IterSeq2Map[K any, V1 any, V2 any](seq iter.Seq2[K, V1], conv func(V1) (V2, bool)) iter.Seq2[K, V2] {
	return func(yield func(K, V2) bool) {
		for key, val := range seq {
			out, ok := conv(val)
			if !ok {
				continue
			}
			if !yield(key, out) {
				return
			}
		}
	}
}
