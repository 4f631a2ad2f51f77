package datastruct

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
	"iter"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/keyisfocus/listarray/pkg/sortkit"
)

// DefaultCapacity is the capacity of a ListArray made with New.
const DefaultCapacity = 10

// NotFound is the index reported by the search methods when the value is not present.
const NotFound = -1

const selfReferenceMarker = "(this Collection)"

// ListArray is a dynamic array.
// The elements occupy the first Len() slots of a backing slice which is reallocated
// with geometric growth when it runs out of free slots.
//
// Values are compared with the == operator.
// When T is an interface type, storing values with non-comparable dynamic types
// will make the search and equality methods panic, just like the == operator would.
//
// The zero value is an empty list with zero capacity, ready to use.
// A nil *ListArray reads as an empty list through Len, Cap, IsEmpty, Hash, String and Iterator,
// while the other methods panic on it.
// A ListArray is not safe for concurrent use.
type ListArray[T comparable] struct {
	// data holds the backing store, len(data) is the capacity.
	// A nil data is the zero-capacity representation.
	data   []T
	length int
}

var _ Sequence[int] = (*ListArray[int])(nil)

// New returns an empty list with DefaultCapacity.
func New[T comparable]() *ListArray[T] {
	return &ListArray[T]{data: make([]T, DefaultCapacity)}
}

// NewWithCapacity returns an empty list which can hold capacity elements before it needs to grow.
func NewWithCapacity[T comparable](capacity int) (*ListArray[T], error) {
	if capacity < 0 {
		return nil, ErrInvalidArgument.F("illegal capacity: %d", capacity)
	}
	var l ListArray[T]
	if 0 < capacity {
		l.data = make([]T, capacity)
	}
	return &l, nil
}

// From makes a list out of the values of a finite sequence.
// The capacity of the list is exactly the number of values.
func From[T comparable](seq iter.Seq[T]) (*ListArray[T], error) {
	if seq == nil {
		return nil, ErrNullReference.F("nil sequence")
	}
	var vs []T
	for v := range seq {
		vs = append(vs, v)
	}
	return FromSlice(vs...), nil
}

// FromSlice makes a list with a copy of the given values.
func FromSlice[T comparable](vs ...T) *ListArray[T] {
	var l ListArray[T]
	if 0 < len(vs) {
		l.data = make([]T, len(vs))
		l.length = copy(l.data, vs)
	}
	return &l
}

// Len returns the number of elements in the list.
func (l *ListArray[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.length
}

// Cap returns the number of slots in the backing store.
func (l *ListArray[T]) Cap() int {
	if l == nil {
		return 0
	}
	return len(l.data)
}

func (l *ListArray[T]) IsEmpty() bool {
	return l.Len() == 0
}

// EnsureCapacity makes sure that at least minCapacity elements fit into the list without further reallocation.
func (l *ListArray[T]) EnsureCapacity(minCapacity int) {
	if len(l.data) < minCapacity {
		l.grow(minCapacity)
	}
}

// TrimToSize shrinks the backing store to the length of the list.
func (l *ListArray[T]) TrimToSize() {
	if len(l.data) <= l.length {
		return
	}
	if l.length == 0 {
		l.data = nil
		return
	}
	data := make([]T, l.length)
	copy(data, l.data[:l.length])
	l.data = data
}

// grow reallocates the backing store to max(minCapacity, 2*capacity).
func (l *ListArray[T]) grow(minCapacity int) {
	data := make([]T, max(minCapacity, 2*len(l.data)))
	copy(data, l.data[:l.length])
	l.data = data
}

func (l *ListArray[T]) checkIndex(index int) error {
	if index < 0 || l.length <= index {
		return ErrIndexOutOfRange.F("index %d is out of range [0, %d)", index, l.length)
	}
	return nil
}

func (l *ListArray[T]) Get(index int) (T, error) {
	if err := l.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	return l.data[index], nil
}

func (l *ListArray[T]) Lookup(index int) (T, bool) {
	v, err := l.Get(index)
	return v, err == nil
}

func (l *ListArray[T]) Contains(v T) bool {
	return l.IndexOf(v) != NotFound
}

// IndexOf returns the index of the first occurrence of v, or NotFound.
func (l *ListArray[T]) IndexOf(v T) int {
	for i := 0; i < l.length; i++ {
		if l.data[i] == v {
			return i
		}
	}
	return NotFound
}

// LastIndexOf returns the index of the last occurrence of v, or NotFound.
func (l *ListArray[T]) LastIndexOf(v T) int {
	for i := l.length - 1; 0 <= i; i-- {
		if l.data[i] == v {
			return i
		}
	}
	return NotFound
}

// ToSlice returns a copy of the elements.
func (l *ListArray[T]) ToSlice() []T {
	vs := make([]T, l.length)
	copy(vs, l.data[:l.length])
	return vs
}

// ToArray copies the elements into dst when they fit and returns dst.
// When dst is longer than the list, the slot right after the last element is set to the zero value,
// and the rest of dst is left untouched.
// When the elements don't fit, a new slice is returned with exactly Len() elements.
func (l *ListArray[T]) ToArray(dst []T) ([]T, error) {
	if dst == nil {
		return nil, ErrNullReference.F("nil destination slice")
	}
	if len(dst) < l.length {
		return l.ToSlice(), nil
	}
	copy(dst, l.data[:l.length])
	if l.length < len(dst) {
		var zero T
		dst[l.length] = zero
	}
	return dst, nil
}

// Add appends a value to the end of the list.
func (l *ListArray[T]) Add(v T) {
	if l.length == len(l.data) {
		l.grow(l.length + 1)
	}
	l.data[l.length] = v
	l.length++
}

func (l *ListArray[T]) Append(vs ...T) {
	for _, v := range vs {
		l.Add(v)
	}
}

// Insert puts v at index and shifts the element at that position and the subsequent ones to the right.
//
// The index must point to an existing element, so Insert can't be used to append at Len().
func (l *ListArray[T]) Insert(index int, v T) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	if l.length == len(l.data) {
		l.grow(l.length + 1)
	}
	copy(l.data[index+1:l.length+1], l.data[index:l.length])
	l.data[index] = v
	l.length++
	return nil
}

func (l *ListArray[T]) Set(index int, v T) (T, error) {
	if err := l.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	prev := l.data[index]
	l.data[index] = v
	return prev, nil
}

// RemoveAt removes the element at index and shifts the subsequent ones to the left.
func (l *ListArray[T]) RemoveAt(index int) (T, error) {
	if err := l.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	return l.removeAt(index), nil
}

func (l *ListArray[T]) removeAt(index int) T {
	v := l.data[index]
	copy(l.data[index:l.length-1], l.data[index+1:l.length])
	l.length--
	var zero T
	l.data[l.length] = zero
	return v
}

// Remove removes the first occurrence of v and reports whether it was present.
func (l *ListArray[T]) Remove(v T) bool {
	index := l.IndexOf(v)
	if index == NotFound {
		return false
	}
	l.removeAt(index)
	return true
}

// Clear removes all the elements while keeping the capacity.
func (l *ListArray[T]) Clear() {
	clear(l.data)
	l.length = 0
}

// Sort orders the list in place with quicksort, so the order of equal elements is not preserved.
// cmp must be a consistent ordering for the duration of the call.
func (l *ListArray[T]) Sort(cmp func(a, b T) int) {
	scratch := l.ToSlice()
	sortkit.QuickSort(scratch, 0, len(scratch)-1, cmp)
	copy(l.data, scratch)
}

// Equal reports whether oth holds the same elements in the same order.
func (l *ListArray[T]) Equal(oth *ListArray[T]) bool {
	if l == oth {
		return true
	}
	if l == nil || oth == nil {
		return false
	}
	itr := oth.Iterator()
	defer itr.Close()
	for i := 0; i < l.length; i++ {
		if !itr.Next() || itr.Value() != l.data[i] {
			return false
		}
	}
	return !itr.Next()
}

var hashSeed = maphash.MakeSeed()

// Hash combines the hash of the elements in order.
// Lists which are Equal have the same Hash within the same process.
func (l *ListArray[T]) Hash() uint64 {
	var (
		digest = xxhash.New()
		buf    [8]byte
	)
	if l == nil {
		return digest.Sum64()
	}
	for _, v := range l.data[:l.length] {
		binary.LittleEndian.PutUint64(buf[:], maphash.Comparable(hashSeed, v))
		_, _ = digest.Write(buf[:])
	}
	return digest.Sum64()
}

// String formats the list as "[e1, e2, e3]".
func (l *ListArray[T]) String() string {
	if l.Len() == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range l.data[:l.length] {
		if 0 < i {
			sb.WriteString(", ")
		}
		if ptr, ok := any(v).(*ListArray[T]); ok && ptr == l {
			sb.WriteString(selfReferenceMarker)
			continue
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte(']')
	return sb.String()
}
