package cli_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/keyisfocus/listarray/pkg/cli"
	"github.com/keyisfocus/listarray/pkg/logger"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"
)

func Example() {
	cli.Main(context.Background(), FooCommand{})
}

type FooCommand struct {
	A string `flag:"the-a,a" default:"val" desc:"this is flag A"`
	B bool   `flag:"the-b,b" default:"true"` // missing description
	C int    `flag:"c" required:"true" desc:"this is flag C, not B"`
	D string `flag:"d" enum:"FOO;BAR;BAZ;" desc:"this flag is an enum"`
	E string `flag:"e" env:"FOO_COMMAND_E" desc:"configurable from the environment"`

	Arg    string `arg:"0" desc:"something something"`
	OthArg int    `arg:"1" default:"42"`

	// Dependency is populated through traditional dependency injection.
	Dependency string

	// LastReceived is populated when ServeCLI is called.
	LastReceived *FooCommand
}

func (cmd FooCommand) Summary() string { return "foo does foo things" }

func (cmd FooCommand) ServeCLI(w cli.Response, r *cli.Request) {
	if cmd.LastReceived != nil {
		*cmd.LastReceived = cmd
	}
	fmt.Fprintln(w, "hello")
}

type StubServeCLIFunc func(w cli.Response, r *cli.Request)

func (fn StubServeCLIFunc) ServeCLI(w cli.Response, r *cli.Request) { fn(w, r) }

func TestServeCLI(t *testing.T) {
	s := testcase.NewSpec(t)

	var (
		received = testcase.Let(s, func(t *testcase.T) *FooCommand {
			return &FooCommand{}
		})
		handler = testcase.Let(s, func(t *testcase.T) cli.Handler {
			return FooCommand{Dependency: "dep", LastReceived: received.Get(t)}
		})
		response = testcase.Let(s, func(t *testcase.T) *cli.ResponseRecorder {
			return &cli.ResponseRecorder{}
		})
		request = testcase.Let(s, func(t *testcase.T) *cli.Request {
			return &cli.Request{}
		})
	)
	act := func(t *testcase.T) {
		cli.ServeCLI(handler.Get(t), response.Get(t), request.Get(t))
	}

	s.Before(func(t *testcase.T) {
		testcase.UnsetEnv(t, "FOO_COMMAND_E")
		t.OnFail(func() {
			t.Log("code:", response.Get(t).Code)
			t.Log("\nout:\n", response.Get(t).Out.String())
			t.Log("\nerr:\n", response.Get(t).Err.String())
		})
	})

	s.When("the required flag is provided", func(s *testcase.Spec) {
		request.Let(s, func(t *testcase.T) *cli.Request {
			r := request.Super(t)
			r.Args = append(r.Args, "-c", "7")
			return r
		})

		s.Then("the handler is served with the defaults", func(t *testcase.T) {
			act(t)

			assert.Equal(t, cli.ExitCodeOK, response.Get(t).Code)
			assert.Equal(t, "hello\n", response.Get(t).Out.String())
			got := received.Get(t)
			assert.Equal(t, "val", got.A)
			assert.Equal(t, true, got.B)
			assert.Equal(t, 7, got.C)
			assert.Empty(t, got.D)
			assert.Empty(t, got.Arg)
			assert.Equal(t, 42, got.OthArg)
			assert.Equal(t, "dep", got.Dependency)
		})

		s.And("every flag and argument is given", func(s *testcase.Spec) {
			request.Let(s, func(t *testcase.T) *cli.Request {
				r := request.Super(t)
				r.Args = append(r.Args, "-a", "foo", "-the-b=false", "-d", "BAR", "-e", "qux", "arg-zero", "24", "rest")
				return r
			})

			s.Then("they are mapped into the handler", func(t *testcase.T) {
				act(t)

				got := received.Get(t)
				assert.Equal(t, "foo", got.A)
				assert.Equal(t, false, got.B)
				assert.Equal(t, "BAR", got.D)
				assert.Equal(t, "qux", got.E)
				assert.Equal(t, "arg-zero", got.Arg)
				assert.Equal(t, 24, got.OthArg)
			})

			s.Then("the consumed arguments are removed from the request", func(t *testcase.T) {
				act(t)

				assert.Equal(t, []string{"rest"}, request.Get(t).Args)
			})
		})

		s.And("the environment configures a flag", func(s *testcase.Spec) {
			value := let.String(s)
			s.Before(func(t *testcase.T) {
				testcase.SetEnv(t, "FOO_COMMAND_E", value.Get(t))
			})

			s.Then("the env value is used", func(t *testcase.T) {
				act(t)

				assert.Equal(t, value.Get(t), received.Get(t).E)
			})

			s.And("the flag is given as well", func(s *testcase.Spec) {
				request.Let(s, func(t *testcase.T) *cli.Request {
					r := request.Super(t)
					r.Args = append(r.Args, "-e", "from-flag")
					return r
				})

				s.Then("the flag wins", func(t *testcase.T) {
					act(t)

					assert.Equal(t, "from-flag", received.Get(t).E)
				})
			})
		})

		s.And("the enum flag has a value outside of its enumeration", func(s *testcase.Spec) {
			request.Let(s, func(t *testcase.T) *cli.Request {
				r := request.Super(t)
				r.Args = append(r.Args, "-d", "QUX")
				return r
			})

			s.Then("it is a bad request", func(t *testcase.T) {
				act(t)

				assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
				assert.Contains(t, response.Get(t).Err.String(), "accepted values")
				assert.Contains(t, response.Get(t).Err.String(), " - FOO")
				assert.Empty(t, response.Get(t).Out.String())
			})
		})

		s.And("the flag value has an incorrect type", func(s *testcase.Spec) {
			request.Let(s, func(t *testcase.T) *cli.Request {
				r := request.Super(t)
				r.Args = append(r.Args, "-c", "seven")
				return r
			})

			s.Then("it is a bad request", func(t *testcase.T) {
				act(t)

				assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
				assert.Contains(t, response.Get(t).Err.String(), "seven")
			})
		})

		s.And("the argument has an incorrect type", func(s *testcase.Spec) {
			request.Let(s, func(t *testcase.T) *cli.Request {
				r := request.Super(t)
				r.Args = append(r.Args, "foo", "forty-two")
				return r
			})

			s.Then("it is a bad request", func(t *testcase.T) {
				act(t)

				assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
				assert.Contains(t, response.Get(t).Err.String(), "forty-two")
			})
		})
	})

	s.When("the required flag is missing", func(s *testcase.Spec) {
		s.Then("it is a bad request with the usage printed to stderr", func(t *testcase.T) {
			act(t)

			assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
			assert.Contains(t, response.Get(t).Err.String(), "Usage:")
			assert.Contains(t, response.Get(t).Err.String(), "c flag is required")
			assert.Nil(t, received.Get(t).LastReceived)
			assert.Empty(t, response.Get(t).Out.String())
		})
	})

	s.When("an unknown flag is given", func(s *testcase.Spec) {
		request.Let(s, func(t *testcase.T) *cli.Request {
			return &cli.Request{Args: []string{"-c", "1", "-unknown"}}
		})

		s.Then("it is a bad request", func(t *testcase.T) {
			act(t)

			assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
			assert.Contains(t, response.Get(t).Err.String(), "unknown")
		})
	})

	s.When("help is requested", func(s *testcase.Spec) {
		request.Let(s, func(t *testcase.T) *cli.Request {
			return &cli.Request{Args: []string{"-h"}}
		})

		s.Then("the usage is printed to the output", func(t *testcase.T) {
			act(t)

			assert.Equal(t, cli.ExitCodeOK, response.Get(t).Code)
			assert.Contains(t, response.Get(t).Out.String(), "Usage:")
			assert.Contains(t, response.Get(t).Out.String(), "foo does foo things")
			assert.Empty(t, response.Get(t).Err.String())
		})
	})

	s.When("the handler is not a struct", func(s *testcase.Spec) {
		handler.Let(s, func(t *testcase.T) cli.Handler {
			return StubServeCLIFunc(func(w cli.Response, r *cli.Request) {
				w.ExitCode(42)
				fmt.Fprint(w, strings.Join(r.Args, " "))
			})
		})
		request.Let(s, func(t *testcase.T) *cli.Request {
			return &cli.Request{Args: []string{"-x", "foo"}}
		})

		s.Then("the request is passed as is", func(t *testcase.T) {
			act(t)

			assert.Equal(t, 42, response.Get(t).Code)
			assert.Equal(t, "-x foo", response.Get(t).Out.String())
		})
	})

	s.When("the handler stops the execution", func(s *testcase.Spec) {
		handler.Let(s, func(t *testcase.T) cli.Handler {
			return StubServeCLIFunc(func(w cli.Response, r *cli.Request) {
				w.ExitCode(cli.ExitCodeError)
				cli.Stop()
				fmt.Fprint(w, "unreachable")
			})
		})

		s.Then("the exit code is kept and nothing panics", func(t *testcase.T) {
			assert.NotPanic(t, func() { act(t) })

			assert.Equal(t, cli.ExitCodeError, response.Get(t).Code)
			assert.Empty(t, response.Get(t).Out.String())
		})
	})

	s.When("the handler panics", func(s *testcase.Spec) {
		handler.Let(s, func(t *testcase.T) cli.Handler {
			return StubServeCLIFunc(func(w cli.Response, r *cli.Request) {
				panic("boom")
			})
		})

		s.Then("the panic is propagated", func(t *testcase.T) {
			assert.Panic(t, func() { act(t) })
		})
	})
}

func TestServeCLI_invalidArgIndex(t *testing.T) {
	type Command struct {
		StubServeCLIFunc
		A string `arg:"1"`
	}
	var w cli.ResponseRecorder
	cli.ServeCLI(Command{StubServeCLIFunc: func(w cli.Response, r *cli.Request) {}}, &w, &cli.Request{})
	assert.Equal(t, cli.ExitCodeBadRequest, w.Code)
	assert.Contains(t, w.Err.String(), "index")
}

func TestRequest_Context(t *testing.T) {
	var r cli.Request
	assert.NotNil(t, r.Context())

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	r2 := r.WithContext(ctx)
	assert.Equal[any](t, "v", r2.Context().Value(key{}))
	assert.Nil(t, r.Context().Value(key{}))
}

func TestHandleError(t *testing.T) {
	logger.Stub(t)

	t.Run("nil error", func(t *testing.T) {
		var w cli.ResponseRecorder
		cli.HandleError(&w, &cli.Request{}, nil)
		assert.Equal(t, cli.ExitCodeOK, w.Code)
		assert.Empty(t, w.Err.String())
	})

	t.Run("error", func(t *testing.T) {
		var w cli.ResponseRecorder
		cli.HandleError(&w, &cli.Request{Body: strings.NewReader("")}, io.ErrUnexpectedEOF)
		assert.Equal(t, cli.ExitCodeError, w.Code)
		assert.Contains(t, w.Err.String(), io.ErrUnexpectedEOF.Error())
	})
}
