package datastruct_test

import (
	"testing"

	"github.com/keyisfocus/listarray/pkg/datastruct"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"
	"go.llib.dev/testcase/random"
)

func TestIterator(t *testing.T) {
	s := testcase.NewSpec(t)

	values := let.Var(s, func(t *testcase.T) []int {
		return random.Slice(t.Random.IntBetween(3, 7), t.Random.Int)
	})
	list := let.Var(s, func(t *testcase.T) *datastruct.ListArray[int] {
		return datastruct.FromSlice(values.Get(t)...)
	})
	itr := let.Var(s, func(t *testcase.T) *datastruct.Iterator[int] {
		return list.Get(t).Iterator()
	})

	s.Test("values are visited in order", func(t *testcase.T) {
		var got []int
		for itr.Get(t).Next() {
			got = append(got, itr.Get(t).Value())
		}
		assert.NoError(t, itr.Get(t).Err())
		assert.Equal(t, values.Get(t), got)
	})

	s.Test("HasNext tells if Next would yield a value", func(t *testcase.T) {
		for range values.Get(t) {
			assert.True(t, itr.Get(t).HasNext())
			assert.True(t, itr.Get(t).Next())
		}
		assert.False(t, itr.Get(t).HasNext())
		assert.False(t, itr.Get(t).Next())
		assert.NoError(t, itr.Get(t).Err())
	})

	s.Test("advancing an exhausted iterator fails", func(t *testcase.T) {
		for itr.Get(t).Next() {
		}
		assert.NoError(t, itr.Get(t).Err())

		assert.False(t, itr.Get(t).Next())
		assert.ErrorIs(t, itr.Get(t).Err(), datastruct.ErrNoMoreElements)
	})

	s.Test("closed iterator yields no more values", func(t *testcase.T) {
		assert.True(t, itr.Get(t).Next())
		assert.NoError(t, itr.Get(t).Close())
		assert.False(t, itr.Get(t).HasNext())
		assert.False(t, itr.Get(t).Next())
		assert.NoError(t, itr.Get(t).Err())
	})

	s.When("the backing store shrinks below the cursor", func(s *testcase.Spec) {
		values.Let(s, func(t *testcase.T) []int {
			return []int{1, 2, 3, 4, 5}
		})

		s.Before(func(t *testcase.T) {
			for i := 0; i < 3; i++ {
				assert.True(t, itr.Get(t).Next())
			}
			for i := 0; i < 3; i++ {
				_, err := list.Get(t).RemoveAt(0)
				assert.NoError(t, err)
			}
			list.Get(t).TrimToSize()
		})

		s.Then("concurrent structure change is reported", func(t *testcase.T) {
			assert.False(t, itr.Get(t).Next())
			assert.ErrorIs(t, itr.Get(t).Err(), datastruct.ErrConcurrentStructureChange)
		})
	})

	s.When("an element is inserted before the cursor", func(s *testcase.Spec) {
		values.Let(s, func(t *testcase.T) []int {
			return []int{1, 2, 3}
		})

		s.Then("the change goes undetected and the current element is visited again", func(t *testcase.T) {
			assert.True(t, itr.Get(t).Next())
			assert.Equal(t, 1, itr.Get(t).Value())

			assert.NoError(t, list.Get(t).Insert(0, 0))

			assert.True(t, itr.Get(t).Next())
			assert.Equal(t, 1, itr.Get(t).Value())
			assert.NoError(t, itr.Get(t).Err())
		})
	})

	s.When("elements are added during the iteration", func(s *testcase.Spec) {
		values.Let(s, func(t *testcase.T) []int {
			return []int{1}
		})

		s.Then("they are visited as well", func(t *testcase.T) {
			assert.True(t, itr.Get(t).Next())
			list.Get(t).Add(2)
			assert.True(t, itr.Get(t).Next())
			assert.Equal(t, 2, itr.Get(t).Value())
			assert.False(t, itr.Get(t).Next())
		})
	})

	s.When("list is empty", func(s *testcase.Spec) {
		values.LetValue(s, nil)

		s.Then("nothing is yielded", func(t *testcase.T) {
			assert.False(t, itr.Get(t).HasNext())
			assert.False(t, itr.Get(t).Next())
			assert.NoError(t, itr.Get(t).Err())
		})
	})
}

func TestListArray_ErrIter(t *testing.T) {
	l := datastruct.FromSlice(1, 2, 3, 4, 5)

	var (
		got    []int
		gotErr error
	)
	for v, err := range l.ErrIter() {
		if err != nil {
			gotErr = err
			break
		}
		got = append(got, v)
		if v == 3 {
			for i := 0; i < 3; i++ {
				_, err := l.RemoveAt(0)
				assert.NoError(t, err)
			}
			l.TrimToSize()
		}
	}
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.ErrorIs(t, gotErr, datastruct.ErrConcurrentStructureChange)
}

func TestListArray_iterBreak(t *testing.T) {
	l := datastruct.FromSlice(1, 2, 3, 4)

	var got []int
	for v := range l.Iter() {
		if v == 3 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
}
