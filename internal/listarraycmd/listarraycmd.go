// Package listarraycmd holds the command line interface of the listarray executable.
package listarraycmd

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/keyisfocus/listarray/pkg/cli"
	"github.com/keyisfocus/listarray/pkg/compare"
	"github.com/keyisfocus/listarray/pkg/datastruct"
	"github.com/keyisfocus/listarray/pkg/iterkit"
	"github.com/keyisfocus/listarray/pkg/logger"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
	OrderNone = "none"
)

// Command collects words into a datastruct.ListArray and prints it.
// The words come from the arguments, or from the request body when no argument is given.
type Command struct {
	// Capacity is the initial capacity of the list, datastruct.DefaultCapacity when not set.
	Capacity *int     `flag:"capacity,c" env:"LISTARRAY_CAPACITY" desc:"initial capacity of the list"`
	Order    string   `flag:"order,o" env:"LISTARRAY_ORDER" default:"none" enum:"asc;desc;none;" desc:"sort order of the words"`
	Trim     bool     `flag:"trim" env:"LISTARRAY_TRIM" desc:"shrink the capacity to the length before printing"`
	Remove   []string `flag:"remove,r" desc:"comma separated words to remove, one occurrence each"`
	Find     string   `flag:"find,f" desc:"report the first and the last index of a word"`
	Stats    bool     `flag:"stats" desc:"print the length and the capacity of the list"`
}

func (cmd Command) Summary() string {
	return "listarray collects words into a dynamic array and prints it"
}

func (cmd Command) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := logger.ContextWith(r.Context(), logger.Field("order", cmd.Order))
	if cmd.Capacity != nil {
		ctx = logger.ContextWith(ctx, logger.Field("initial_capacity", *cmd.Capacity))
	}
	r = r.WithContext(ctx)

	l, err := cmd.newList()
	if err != nil {
		cli.HandleError(w, r, err)
		return
	}

	words, err := iterkit.CollectErr(cmd.input(r))
	if err != nil {
		cli.HandleError(w, r, err)
		return
	}
	l.Append(words...)

	for _, word := range cmd.Remove {
		if !l.Remove(word) {
			logger.Debug(ctx, "word to remove is not present", logger.Field("word", word))
		}
	}

	switch cmd.Order {
	case OrderAsc:
		l.Sort(compare.Strings[string])
	case OrderDesc:
		l.Sort(compare.Reverse(compare.Strings[string]))
	}

	if cmd.Trim {
		l.TrimToSize()
	}

	fmt.Fprintln(w, l.String())

	if cmd.Find != "" {
		fmt.Fprintf(w, "%s: first=%d last=%d\n", cmd.Find, l.IndexOf(cmd.Find), l.LastIndexOf(cmd.Find))
	}

	if cmd.Stats {
		table := [][]string{
			{"length", "capacity"},
			{strconv.Itoa(l.Len()), strconv.Itoa(l.Cap())},
		}
		if err := cli.FPrintTable(w, table); err != nil {
			cli.HandleError(w, r, err)
			return
		}
	}

	logger.Info(ctx, "list is built",
		logger.Field("length", l.Len()),
		logger.Field("capacity", l.Cap()))
}

func (cmd Command) newList() (*datastruct.ListArray[string], error) {
	if cmd.Capacity == nil {
		return datastruct.New[string](), nil
	}
	return datastruct.NewWithCapacity[string](*cmd.Capacity)
}

// input yields the arguments, or the whitespace separated words of the body when no argument is given.
func (cmd Command) input(r *cli.Request) iterkit.ErrSeq[string] {
	if 0 < len(r.Args) || r.Body == nil {
		return iterkit.ToErrSeq(iterkit.Slice(r.Args))
	}
	scanner := bufio.NewScanner(r.Body)
	scanner.Split(bufio.ScanWords)
	return iterkit.BufioScanner[string](scanner, nil)
}
