package datastruct

import (
	"iter"

	"github.com/keyisfocus/listarray/pkg/iterkit"
)

// Iterator is a forward only pull iterator over a ListArray.
//
// It reads the live state of the list, so elements added during the iteration are visited as well.
// The only staleness check is that the backing store must not shrink below the cursor,
// which is reported as ErrConcurrentStructureChange.
// Insertions and removals which keep the capacity are not detected,
// and they can make the iteration skip or repeat elements.
type Iterator[T comparable] struct {
	list   *ListArray[T]
	cursor int
	value  T
	err    error
	done   bool
	closed bool
}

var _ iterkit.PullIter[int] = (*Iterator[int])(nil)

// Iterator returns a new Iterator positioned before the first element.
func (l *ListArray[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{list: l}
}

// HasNext reports whether the next call to Next would yield a value.
func (i *Iterator[T]) HasNext() bool {
	return !i.closed && i.err == nil && i.cursor < i.list.Len()
}

// Next advances the iterator.
// It returns false at the end of the list, or when the iteration failed, in which case Err reports the cause.
// Advancing an exhausted iterator fails with ErrNoMoreElements.
func (i *Iterator[T]) Next() bool {
	if i.closed || i.err != nil {
		return false
	}
	if i.done {
		i.err = ErrNoMoreElements.F("iterator is exhausted after %d elements", i.cursor)
		return false
	}
	if i.list.Cap() < i.cursor {
		i.err = ErrConcurrentStructureChange.F("capacity %d is below the cursor position %d", i.list.Cap(), i.cursor)
		return false
	}
	if i.list.Len() <= i.cursor {
		i.done = true
		return false
	}
	i.value = i.list.data[i.cursor]
	i.cursor++
	return true
}

func (i *Iterator[T]) Value() T {
	return i.value
}

func (i *Iterator[T]) Err() error {
	return i.err
}

func (i *Iterator[T]) Close() error {
	i.closed = true
	return nil
}

// Iter returns the elements of the list as an iter.Seq.
func (l *ListArray[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		itr := l.Iterator()
		defer itr.Close()
		for itr.Next() {
			if !yield(itr.Value()) {
				return
			}
		}
	}
}

// All returns the index and value pairs of the list.
func (l *ListArray[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		itr := l.Iterator()
		defer itr.Close()
		for index := 0; itr.Next(); index++ {
			if !yield(index, itr.Value()) {
				return
			}
		}
	}
}

// ErrIter is like Iter, but it also yields the error which interrupted the iteration.
func (l *ListArray[T]) ErrIter() iterkit.SingleUseErrSeq[T] {
	return iterkit.FromPullIter[T](l.Iterator())
}
