package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/keyisfocus/listarray/internal/listarraycmd"
	"github.com/keyisfocus/listarray/pkg/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	cli.Main(ctx, listarraycmd.Command{})
}
