// Package utils implements generic helper functions.
package utils

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// GetKeys returns the keys of the input map in an arbitrary order.
func GetKeys[K comparable, V any](m map[K]V) (keys []K) {
	keys = make([]K, len(m))
	var i int
	for key := range m {
		keys[i] = key
		i++
	}
	return
}

// GetSortedKeys returns the keys of the input map in ascending order.
func GetSortedKeys[K constraints.Ordered, V any](m map[K]V) (keys []K) {
	keys = GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return
}
