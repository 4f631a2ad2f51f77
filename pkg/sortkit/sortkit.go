// Package sortkit implements in-place comparison sorting for slices.
package sortkit

import "github.com/keyisfocus/listarray/pkg/compare"

// Sort orders the whole slice in non-decreasing order according to cmp.
// The sort is not stable.
func Sort[T any](vs []T, cmp func(a, b T) int) {
	QuickSort(vs, 0, len(vs)-1, cmp)
}

// QuickSort orders vs[start:end+1] in place with a crossing-marker partition around the middle element.
//
// cmp must return a negative number when a < b, zero when a == b, and a positive number when a > b.
// The average cost is O(n log n), an unlucky pivot sequence degrades it to O(n²).
func QuickSort[T any](vs []T, start, end int, cmp func(a, b T) int) {
	if end <= start {
		return
	}
	var (
		left  = start
		right = end
		pivot = vs[start+(end-start)/2]
	)
	for left <= right {
		for compare.IsLess(cmp(vs[left], pivot)) {
			left++
		}
		for compare.IsGreater(cmp(vs[right], pivot)) {
			right--
		}
		if left <= right {
			if left < right {
				vs[left], vs[right] = vs[right], vs[left]
			}
			left++
			right--
		}
	}
	if left < end {
		QuickSort(vs, left, end, cmp)
	}
	if start < right {
		QuickSort(vs, start, right, cmp)
	}
}
