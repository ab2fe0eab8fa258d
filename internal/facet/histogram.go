package facet

import (
	"cmp"
	"maps"
	"slices"
)

// Histogram maps a bucket key to the number of observations in it. Buckets
// are created on first observation and never removed.
type Histogram[K cmp.Ordered] map[K]int

// Add counts one observation of k and returns the bucket's new count.
func (h Histogram[K]) Add(k K) int {
	h[k]++
	return h[k]
}

// Keys returns the bucket keys in ascending order.
func (h Histogram[K]) Keys() []K {
	return slices.Sorted(maps.Keys(h))
}

// Counts returns the bucket counts in ascending key order.
func (h Histogram[K]) Counts() []int {
	keys := h.Keys()
	out := make([]int, len(keys))
	for i, k := range keys {
		out[i] = h[k]
	}
	return out
}

// Merge adds every bucket of other into h.
func (h Histogram[K]) Merge(other Histogram[K]) {
	for k, n := range other {
		h[k] += n
	}
}

// Total is the number of observations across all buckets.
func (h Histogram[K]) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}
