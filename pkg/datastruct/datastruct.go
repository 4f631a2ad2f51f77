// Package datastruct contains generic container types.
//
// The main type is ListArray, a resizable, index addressable sequence backed by a contiguous slice.
package datastruct

import (
	"iter"

	"github.com/keyisfocus/listarray/pkg/errorkit"
)

const (
	// ErrInvalidArgument is returned when a constructor receives an illegal parameter, such as a negative capacity.
	ErrInvalidArgument errorkit.Error = "ErrInvalidArgument"
	// ErrNullReference is returned when a required argument is nil.
	ErrNullReference errorkit.Error = "ErrNullReference"
	// ErrIndexOutOfRange is returned by the index based operations when the index is outside of the valid range.
	ErrIndexOutOfRange errorkit.Error = "ErrIndexOutOfRange"
	// ErrNoMoreElements is reported by an Iterator that was advanced after it got exhausted.
	ErrNoMoreElements errorkit.Error = "ErrNoMoreElements"
	// ErrConcurrentStructureChange is reported by an Iterator
	// when the backing store of its list shrank below the iteration cursor.
	ErrConcurrentStructureChange errorkit.Error = "ErrConcurrentStructureChange"
)

type Sizer interface {
	Len() int
}

type List[T any] interface {
	Append(vs ...T)
	ToSlice() []T
	Iter() iter.Seq[T]
	Sizer
}

// Sequence is a List where the elements are addressable by their index.
type Sequence[T any] interface {
	List[T]
	Lookup(index int) (T, bool)
	Get(index int) (T, error)
	// Set replaces the value at the given index and returns the previous one.
	Set(index int, val T) (T, error)
	// Insert puts the value at the given index and shifts the subsequent values to the right.
	Insert(index int, val T) error
	// RemoveAt removes the value at the given index and shifts the subsequent values to the left.
	RemoveAt(index int) (T, error)
}
