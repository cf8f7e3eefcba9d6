package internal

import (
	"iter"
	"maps"
	"slices"
)

// IterSeq2Concat yields every pair of each sequence in turn.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// SortedDefines yields the entries of define tables, each table in key
// order.
func SortedDefines(tables ...map[string]string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, table := range tables {
			for _, key := range slices.Sorted(maps.Keys(table)) {
				if !yield(key, table[key]) {
					return
				}
			}
		}
	}
}
