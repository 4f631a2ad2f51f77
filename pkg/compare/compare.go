// Package compare holds ordering functions in the shape sorting routines expect:
// a negative result when a < b, zero when they are equal and a positive result when a > b.
package compare

import (
	"strings"

	"golang.org/x/exp/constraints"
)

// IsLess reports whether a comparison result means a < b.
func IsLess(cmp int) bool {
	return cmp < 0
}

// IsGreater reports whether a comparison result means a > b.
func IsGreater(cmp int) bool {
	return 0 < cmp
}

type number interface {
	constraints.Integer | constraints.Float
}

func Numbers[T number](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func Strings[S ~string](a, b S) int {
	return strings.Compare(string(a), string(b))
}

// Reverse turns an ordering function into its descending counterpart.
func Reverse[T any](cmp func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		return cmp(b, a)
	}
}
