// Package iterkit provides iterator helpers around the standard iter package
// and the pull based iterator contract used across listarray.
package iterkit

import (
	"bufio"
	"io"
	"iter"
	"slices"
)

// ErrSeq is an iterator that can tell if a currently returned value has an issue or not.
type ErrSeq[T any] = iter.Seq2[T, error]

// SingleUseErrSeq is an ErrSeq that can only be iterated once.
// After iteration, it is expected to yield no more values.
type SingleUseErrSeq[T any] = ErrSeq[T]

func Slice[T any](slice []T) iter.Seq[T] {
	return slices.Values(slice)
}

// ToErrSeq lifts an iter.Seq into an ErrSeq which never yields an error.
func ToErrSeq[T any](i iter.Seq[T]) ErrSeq[T] {
	return func(yield func(T, error) bool) {
		for v := range i {
			if !yield(v, nil) {
				return
			}
		}
	}
}

func Collect[T any](i iter.Seq[T]) []T {
	if i == nil {
		return nil
	}
	var vs = make([]T, 0)
	for v := range i {
		vs = append(vs, v)
	}
	return vs
}

// CollectErr collects the values of an ErrSeq until the first error.
func CollectErr[T any](i ErrSeq[T]) ([]T, error) {
	if i == nil {
		return nil, nil
	}
	var vs = make([]T, 0)
	for v, err := range i {
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

///////////////////////////////////////////// Pull Iter ///////////////////////////////////////////////////////

// PullIter define a separate object that encapsulates accessing and traversing an aggregate object.
// Clients use an iterator to access and traverse an aggregate without knowing its representation (data structures).
// Interface design inspirited by https://golang.org/pkg/encoding/json/#Decoder
// https://en.wikipedia.org/wiki/Iterator_pattern
type PullIter[V any] interface {
	// Next will ensure that Value returns the next item when executed.
	// If the next value is not retrievable, Next should return false and ensure Err() will return the error cause.
	Next() bool
	// Value returns the current value in the iterator.
	// The action should be repeatable without side effects.
	Value() V
	// Closer is required to make it able to cancel iterators where resources are being used behind the scene
	// for all other cases where the underling io is handled on a higher level, it should simply return nil
	io.Closer
	// Err return the error cause.
	Err() error
}

// FromPullIter turns a PullIter into a single use ErrSeq.
// The PullIter is closed when the iteration finishes.
func FromPullIter[T any](itr PullIter[T]) SingleUseErrSeq[T] {
	return func(yield func(T, error) bool) {
		defer itr.Close()
		for itr.Next() {
			if !yield(itr.Value(), nil) {
				return
			}
		}
		var zero T
		if err := itr.Err(); err != nil {
			if !yield(zero, err) {
				return
			}
		}
		if err := itr.Close(); err != nil {
			yield(zero, err)
		}
	}
}

///////////////////////////////////////////// bufio ///////////////////////////////////////////////////////

// BufioScanner iterates the tokens of a bufio.Scanner.
// The closer is optional, and when given, it is closed at the end of the iteration.
func BufioScanner[T string | []byte](s *bufio.Scanner, closer io.Closer) SingleUseErrSeq[T] {
	return FromPullIter[T](&bufioScannerIter[T]{
		Scanner: s,
		Closer:  closer,
	})
}

type bufioScannerIter[T string | []byte] struct {
	*bufio.Scanner
	Closer io.Closer
	value  T
	closed bool
}

func (i *bufioScannerIter[T]) Next() bool {
	if i.Scanner.Err() != nil {
		return false
	}
	if !i.Scanner.Scan() {
		return false
	}
	var v T
	switch any(v).(type) {
	case string:
		i.value = T(i.Scanner.Text())
	case []byte:
		i.value = T(slices.Clone(i.Scanner.Bytes()))
	}
	return true
}

func (i *bufioScannerIter[T]) Err() error {
	return i.Scanner.Err()
}

func (i *bufioScannerIter[T]) Close() error {
	if i.Closer == nil || i.closed {
		return nil
	}
	i.closed = true
	return i.Closer.Close()
}

func (i *bufioScannerIter[T]) Value() T {
	return i.value
}
