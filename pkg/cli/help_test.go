package cli_test

import (
	"testing"

	"github.com/keyisfocus/listarray/pkg/cli"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

func TestUsage(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		usage, err := cli.Usage(FooCommand{}, "thepath")
		assert.NoError(t, err)

		testcase.OnFail(t, func() {
			t.Log(usage)
		})

		assert.Contains(t, usage, "Usage: thepath [OPTION]... [Arg] [OthArg]")
		assert.Contains(t, usage, "foo does foo things")
		assert.Contains(t, usage, `-the-a=[string]: this is flag A (default: "val")`)
		assert.Contains(t, usage, "  -a")
		assert.Contains(t, usage, `-the-b=[bool] (default: "true")`)
		assert.Contains(t, usage, "-c=[int]: this is flag C, not B")
		assert.Contains(t, usage, "(enum: FOO, BAR, BAZ)")
		assert.Contains(t, usage, "-e=[string]: configurable from the environment (env: FOO_COMMAND_E)")
		assert.Contains(t, usage, "Arg [string]: something something")
		assert.Contains(t, usage, `OthArg [int] (default: "42")`)
	})
	t.Run("when cli.Handler#Usage(path) is supported", func(t *testing.T) {
		usage, err := cli.Usage(CommandWithUsageSupport{}, "thepath")
		assert.NoError(t, err)

		assert.Contains(t, usage, "Custom Usage Message: thepath")
	})
}

type CommandWithUsageSupport struct{ FooCommand }

func (CommandWithUsageSupport) Usage(path string) (string, error) {
	return "Custom Usage Message: " + path, nil
}
