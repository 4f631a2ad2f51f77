package errorkit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/keyisfocus/listarray/pkg/errorkit"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"
)

var rnd = random.New(random.CryptoSeed{})

func ExampleError_Error() {
	const ErrSomething errorkit.Error = "something is an error"

	_ = ErrSomething
}

func TestError_Error_smoke(t *testing.T) {
	const ErrExample errorkit.Error = "ErrExample"
	assert.Equal(t, ErrExample.Error(), string(ErrExample))
}

type ErrAsStub struct {
	V string
}

func (err ErrAsStub) Error() string {
	return fmt.Sprintf("ErrAsStub: %s", err.V)
}

func TestError_Wrap(t *testing.T) {
	const ErrExample errorkit.Error = "ErrExample"
	t.Run("happy", func(t *testing.T) {
		exp := rnd.Error()
		got := ErrExample.Wrap(exp)
		assert.ErrorIs(t, got, exp)
		assert.ErrorIs(t, got, ErrExample)
		assert.Contains(t, got.Error(), fmt.Sprintf("[%s] %s", ErrExample, exp.Error()))
	})
	t.Run("As", func(t *testing.T) {
		exp := ErrAsStub{V: rnd.String()}
		got := ErrExample.Wrap(exp)

		var expected ErrAsStub
		assert.True(t, errors.As(got, &expected))
		assert.Equal(t, exp, expected)
	})
	t.Run("nil", func(t *testing.T) {
		got := ErrExample.Wrap(nil)
		assert.Equal[error](t, got, ErrExample)
	})
}

func TestError_F(t *testing.T) {
	const ErrExample errorkit.Error = "ErrExample"
	got := ErrExample.F("index %d is out of range", 42)
	assert.ErrorIs(t, got, ErrExample)
	assert.Contains(t, got.Error(), "index 42 is out of range")
	assert.Equal(t, "index 42 is out of range", errors.Unwrap(got).Error())
}

func TestFinish(t *testing.T) {
	err1 := rnd.Error()
	err2 := rnd.Error()

	got := func() (rErr error) {
		defer errorkit.Finish(&rErr, func() error {
			return err1
		})
		return err2
	}()

	assert.ErrorIs(t, got, err1)
	assert.ErrorIs(t, got, err2)
}

func TestMerge(t *testing.T) {
	t.Run("no error", func(t *testing.T) {
		assert.NoError(t, errorkit.Merge())
		assert.NoError(t, errorkit.Merge(nil, nil))
	})
	t.Run("single error is returned as is", func(t *testing.T) {
		exp := rnd.Error()
		assert.Equal(t, exp, errorkit.Merge(nil, exp, nil))
	})
	t.Run("multiple errors", func(t *testing.T) {
		err1, err2 := rnd.Error(), rnd.Error()
		got := errorkit.Merge(err1, nil, err2)
		assert.ErrorIs(t, got, err1)
		assert.ErrorIs(t, got, err2)
		assert.Contains(t, got.Error(), err1.Error())
		assert.Contains(t, got.Error(), err2.Error())
	})
}
