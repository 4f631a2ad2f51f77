// Package datastructcontract holds reusable behavioural specifications for the datastruct interfaces.
package datastructcontract

import (
	"slices"
	"testing"

	"github.com/keyisfocus/listarray/pkg/datastruct"
	"github.com/keyisfocus/listarray/pkg/iterkit"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"
	"go.llib.dev/testcase/random"
)

// Sequence describes the expected behaviour of a datastruct.Sequence implementation.
// mk must return an empty sequence, and makeElem must return a new random element.
func Sequence[T any](mk func(tb testing.TB) datastruct.Sequence[T], makeElem func(tb testing.TB) T) testcase.SpecSuite {
	s := testcase.NewSpec(nil)

	seq := let.Var(s, func(t *testcase.T) datastruct.Sequence[T] {
		return mk(t)
	})
	values := let.Var(s, func(t *testcase.T) []T {
		return random.Slice(t.Random.IntBetween(3, 7), func() T {
			return makeElem(t)
		})
	})
	filled := func(s *testcase.Spec) {
		seq.Let(s, func(t *testcase.T) datastruct.Sequence[T] {
			seq := seq.Super(t)
			seq.Append(values.Get(t)...)
			return seq
		})
	}

	s.Test("smoke", func(t *testcase.T) {
		assert.Equal(t, 0, seq.Get(t).Len(), `The "mk" sequence should be empty but isn't, please check the setup.`)

		seq.Get(t).Append(values.Get(t)...)
		assert.Equal(t, len(values.Get(t)), seq.Get(t).Len())
		assert.Equal(t, values.Get(t), seq.Get(t).ToSlice())
		assert.Equal(t, values.Get(t), iterkit.Collect(seq.Get(t).Iter()))
	})

	s.Describe("#Lookup", func(s *testcase.Spec) {
		index := let.Var[int](s, nil)
		act := let.Act2(func(t *testcase.T) (T, bool) {
			return seq.Get(t).Lookup(index.Get(t))
		})

		s.When("sequence is empty", func(s *testcase.Spec) {
			index.Let(s, func(t *testcase.T) int {
				return t.Random.IntBetween(0, 42)
			})

			s.Then("the requested value is reported to be missing", func(t *testcase.T) {
				_, ok := act(t)
				assert.False(t, ok)
			})
		})

		s.When("sequence contains values", func(s *testcase.Spec) {
			filled(s)

			s.And("index points to an existing value", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return t.Random.IntN(len(values.Get(t)))
				})

				s.Then("the expected value is returned", func(t *testcase.T) {
					got, ok := act(t)
					assert.True(t, ok)
					assert.Equal(t, values.Get(t)[index.Get(t)], got)
				})
			})

			s.And("index is out of bound", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return len(values.Get(t)) + t.Random.IntBetween(0, 42)
				})

				s.Then("the requested value is reported to be missing", func(t *testcase.T) {
					_, ok := act(t)
					assert.False(t, ok)
				})
			})
		})
	})

	s.Describe("#Set", func(s *testcase.Spec) {
		var (
			index = let.Var[int](s, nil)
			value = let.Var(s, func(t *testcase.T) T {
				return makeElem(t)
			})
		)
		act := let.Act2(func(t *testcase.T) (T, error) {
			return seq.Get(t).Set(index.Get(t), value.Get(t))
		})

		s.When("sequence is empty", func(s *testcase.Spec) {
			index.Let(s, func(t *testcase.T) int {
				return t.Random.IntBetween(0, 42)
			})

			s.Then("it reports that it was not possible", func(t *testcase.T) {
				_, err := act(t)
				assert.ErrorIs(t, err, datastruct.ErrIndexOutOfRange)
			})
		})

		s.When("sequence contains values", func(s *testcase.Spec) {
			filled(s)

			s.And("index points to an existing value", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return t.Random.IntN(len(values.Get(t)))
				})

				s.Then("apart from the changed value, everything else remains the original one", func(t *testcase.T) {
					prev, err := act(t)
					assert.NoError(t, err)
					assert.Equal(t, values.Get(t)[index.Get(t)], prev)

					exp := slices.Clone(values.Get(t))
					exp[index.Get(t)] = value.Get(t)
					assert.Equal(t, exp, seq.Get(t).ToSlice())
				})
			})

			s.And("index is out of bound", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return len(values.Get(t)) + t.Random.IntBetween(0, 42)
				})

				s.Then("failure to set the value is reported", func(t *testcase.T) {
					_, err := act(t)
					assert.ErrorIs(t, err, datastruct.ErrIndexOutOfRange)
				})
			})
		})
	})

	s.Describe("#Insert", func(s *testcase.Spec) {
		var (
			index = let.Var[int](s, nil)
			value = let.Var(s, func(t *testcase.T) T {
				return makeElem(t)
			})
		)
		act := let.Act(func(t *testcase.T) error {
			return seq.Get(t).Insert(index.Get(t), value.Get(t))
		})

		s.When("sequence is empty", func(s *testcase.Spec) {
			index.Let(s, func(t *testcase.T) int {
				return t.Random.IntBetween(0, 42)
			})

			s.Then("it reports failure", func(t *testcase.T) {
				assert.ErrorIs(t, act(t), datastruct.ErrIndexOutOfRange)
				assert.Equal(t, 0, seq.Get(t).Len())
			})
		})

		s.When("sequence contains values", func(s *testcase.Spec) {
			// A B C <- insert X at 1
			// -> A X B C
			filled(s)

			s.And("index points to an existing value", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return t.Random.IntN(len(values.Get(t)))
				})

				s.Then("the value is inserted and the old values are shifted after it", func(t *testcase.T) {
					assert.NoError(t, act(t))

					exp := slices.Insert(slices.Clone(values.Get(t)), index.Get(t), value.Get(t))
					assert.Equal(t, exp, seq.Get(t).ToSlice())
				})
			})

			s.And("index is out of bound", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return len(values.Get(t)) + t.Random.IntBetween(0, 42)
				})

				s.Then("failure is reported", func(t *testcase.T) {
					assert.ErrorIs(t, act(t), datastruct.ErrIndexOutOfRange)
					assert.Equal(t, values.Get(t), seq.Get(t).ToSlice())
				})
			})
		})
	})

	s.Describe("#RemoveAt", func(s *testcase.Spec) {
		index := let.Var[int](s, nil)
		act := let.Act2(func(t *testcase.T) (T, error) {
			return seq.Get(t).RemoveAt(index.Get(t))
		})

		s.When("sequence contains values", func(s *testcase.Spec) {
			filled(s)

			s.And("index points to an existing value", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return t.Random.IntN(len(values.Get(t)))
				})

				s.Then("the total length shrinks by one", func(t *testcase.T) {
					befLen := seq.Get(t).Len()
					_, err := act(t)
					assert.NoError(t, err)
					assert.Equal(t, befLen, seq.Get(t).Len()+1)
				})

				s.Then("apart from the removed value, everything else remains the original one", func(t *testcase.T) {
					got, err := act(t)
					assert.NoError(t, err)
					assert.Equal(t, values.Get(t)[index.Get(t)], got)

					exp := slices.Delete(slices.Clone(values.Get(t)), index.Get(t), index.Get(t)+1)
					assert.Equal(t, exp, seq.Get(t).ToSlice())
					assert.Equal(t, exp, iterkit.Collect(seq.Get(t).Iter()))
				})
			})

			s.And("index is out of bound", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return len(values.Get(t)) + t.Random.IntBetween(0, 42)
				})

				s.Then("failure is reported", func(t *testcase.T) {
					_, err := act(t)
					assert.ErrorIs(t, err, datastruct.ErrIndexOutOfRange)
				})
			})
		})
	})

	return s.AsSuite("Sequence[T]")
}
