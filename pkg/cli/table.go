package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/keyisfocus/listarray/pkg/errorkit"
)

type TableConfig struct {
	MinWidth int
	TabWidth int
	Padding  int
	PadChar  byte
	Prefix   string
}

type TableOption func(c *TableConfig)

func TableRowPrefix(prefix string) TableOption {
	return func(c *TableConfig) {
		c.Prefix = prefix
	}
}

func TablePadding(padding int) TableOption {
	return func(c *TableConfig) {
		c.Padding = padding
	}
}

// FPrintTable writes the rows into w with their cells aligned into columns.
func FPrintTable(w io.Writer, table [][]string, opts ...TableOption) (rErr error) {
	c := TableConfig{MinWidth: 2, TabWidth: 2, Padding: 2, PadChar: ' '}
	for _, opt := range opts {
		opt(&c)
	}

	tw := tabwriter.NewWriter(w, c.MinWidth, c.TabWidth, c.Padding, c.PadChar, 0)
	defer errorkit.Finish(&rErr, tw.Flush)
	for _, row := range table {
		if _, err := fmt.Fprintln(tw, c.Prefix+strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
