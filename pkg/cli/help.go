package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/keyisfocus/listarray/pkg/env"
)

type HelpSummary interface {
	// Summary returns a summary about the application
	Summary() string
}

type HelpUsage interface {
	Usage(pattern string) (string, error)
}

func toHelp(h Handler, err error) string {
	usage, usageErr := Usage(h, execName())
	if usageErr != nil {
		usage = usageErr.Error()
	}
	var o = &bytes.Buffer{}

	printfln(o, usage)
	printfln(o)

	if !isHelp(err) && err != nil {
		printfln(o, err.Error())
	}

	return o.String()
}

// Usage will generate a help usage message for a given handler on a given command request pattern/path.
func Usage(h Handler, pattern string) (string, error) {
	if u, ok := h.(HelpUsage); ok {
		return u.Usage(pattern)
	}
	m, _, err := structMetaFor(h)
	if err != nil {
		return "", err
	}
	return helpCreateUsage(h, m, pattern), nil
}

func helpCreateUsage(h Handler, m structMeta, path string) string {
	var lines []string

	var usage string
	usage += "Usage: " + path

	if 0 < len(m.Flags) {
		usage += " [OPTION]..."
	}
	for _, arg := range m.Args {
		usage += fmt.Sprintf(" [%s]", arg.Name)
	}

	lines = append(lines, usage, "")

	if s, ok := h.(HelpSummary); ok {
		lines = append(lines, s.Summary(), "")
	}

	if 0 < len(m.Flags) {
		lines = append(lines, "Options:")
		for _, flag := range m.Flags {
			if len(flag.Names) == 0 {
				continue
			}

			line := fmt.Sprintf("  -%s=[%s]", flag.Names[0], flag.StructField.Type.String())
			if 0 < len(flag.Desc) {
				line += ": " + flag.Desc
			}

			if osEnvVarNames, ok := env.LookupFieldEnvNames(flag.StructField); ok {
				line += fmt.Sprintf(" (env: %s)", strings.Join(osEnvVarNames, ", "))
			}

			if flag.HasDefault {
				line += fmt.Sprintf(" (default: %q)", flag.Default)
			}

			if 0 < len(flag.Enum) {
				line += fmt.Sprintf(" (enum: %s)", strings.Join(flag.Enum, ", "))
			}

			lines = append(lines, line)

			for i := 1; i < len(flag.Names); i++ {
				lines = append(lines, fmt.Sprintf("  -%s", flag.Names[i]))
			}
		}
	}
	if 0 < len(m.Args) {
		if 0 < len(m.Flags) {
			lines = append(lines, "")
		}
		lines = append(lines, "Arguments:")
		for _, arg := range m.Args {
			line := fmt.Sprintf("  %s [%s]", arg.Name, arg.StructField.Type.String())
			if 0 < len(arg.Desc) {
				line += ": " + arg.Desc
			}
			if arg.HasDefault {
				line += fmt.Sprintf(" (default: %q)", arg.Default)
			}
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, lineSeparator)
}
