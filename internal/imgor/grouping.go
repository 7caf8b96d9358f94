package imgor

import "iter"

// GroupBy yields the consecutive runs of data in which every element is the
// same as the first element of its run according to same. same is called as
// same(element, first) and is never applied across run boundaries, so it
// should be transitive over the intended key (e.g. equality of a derived
// value).
//
// The yielded slices share data's backing array and are capped at their own
// length.
func GroupBy[T any](data []T, same func(a, b T) bool) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		first := 0
		for first < len(data) {
			end := first + 1
			for end < len(data) && same(data[end], data[first]) {
				end++
			}
			if !yield(data[first:end:end]) {
				return
			}
			first = end
		}
	}
}
