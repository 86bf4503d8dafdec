// Package main provides the hostkernel CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/born-ml/hostkernel/internal/cli"
	"github.com/born-ml/hostkernel/internal/ctxlog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, exit, err := cli.Parse(args, stderr)
	if exit {
		return 0
	}
	if err != nil {
		return exitCode(err, stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = ctxlog.WithLogger(ctx, cli.NewLogger(opts, stderr))

	if err := cli.Run(ctx, opts, stdout); err != nil {
		return exitCode(err, stderr)
	}
	return 0
}

func exitCode(err error, stderr io.Writer) int {
	fmt.Fprintln(stderr, "Error:", err)
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
