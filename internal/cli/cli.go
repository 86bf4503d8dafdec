// Package cli parses command-line arguments and drives workload runs for the
// hostkernel binary.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/born-ml/hostkernel/internal/config"
	"github.com/born-ml/hostkernel/internal/ctxlog"
	"github.com/born-ml/hostkernel/internal/workload"
)

// Version is the hostkernel release.
const Version = "v0.1.0-dev"

// ExitError is a failure that ends the process with Code: 2 for usage and
// configuration problems, 1 for a workload that failed or did not verify.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Options holds the parsed command line.
type Options struct {
	ConfigPath  string
	Workers     int // 0 keeps the configured value.
	LogLevel    slog.Level
	LogFormat   string
	ShowVersion bool
}

// Parse processes command-line arguments. It returns the options, a boolean
// indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	if len(args) > 0 && args[0] == "version" {
		return &Options{ShowVersion: true}, false, nil
	}

	flagSet := flag.NewFlagSet("hostkernel", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(output, `
hostkernel - run data-parallel kernels over N-dimensional ranges on the host.

Usage:
  hostkernel [options] [CONFIG]
  hostkernel version

Arguments:
  CONFIG
    Path to an HCL workload file. Without one the built-in workloads run.

Workloads: %s

Options:
`, strings.Join(workload.Kinds(), ", "))
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the HCL workload file.")
	workersFlag := flagSet.Int("workers", 0, "Number of workers per dispatch. 0 keeps the configured value.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	opts := &Options{ConfigPath: *configFlag, Workers: *workersFlag}
	if opts.ConfigPath == "" && flagSet.NArg() > 0 {
		opts.ConfigPath = flagSet.Arg(0)
	}
	if opts.Workers < 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid -workers %d: must be >= 0", opts.Workers)}
	}

	opts.LogFormat = strings.ToLower(*logFormatFlag)
	if opts.LogFormat != "text" && opts.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid -log-format %q: must be 'text' or 'json'", *logFormatFlag)}
	}
	if err := opts.LogLevel.UnmarshalText([]byte(*logLevelFlag)); err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid -log-level %q", *logLevelFlag)}
	}
	return opts, false, nil
}

// NewLogger builds the slog.Logger described by opts.
func NewLogger(opts *Options, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: opts.LogLevel}
	if opts.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// Run loads the configuration, runs every workload and prints a summary
// line per run to out.
func Run(ctx context.Context, opts *Options, out io.Writer) error {
	if opts.ShowVersion {
		fmt.Fprintf(out, "hostkernel %s\n", Version)
		return nil
	}

	logger := ctxlog.FromContext(ctx)

	m := config.Default()
	if opts.ConfigPath != "" {
		var err error
		if m, err = config.Load(ctx, opts.ConfigPath); err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}
	}
	if opts.Workers > 0 {
		m.Engine.NumWorkers = opts.Workers
		m.Engine.Enabled = opts.Workers > 1
	}
	logger.Info("Starting workloads",
		"workloads", len(m.Workloads), "repeat", m.Repeat,
		"parallel", m.Engine.Enabled, "workers", m.Engine.NumWorkers)

	results, err := workload.RunAll(ctx, m)
	for _, r := range results {
		fmt.Fprintf(out, "%-10s %12d elements %14s ok\n", r.Kind, r.Elements, r.Duration)
	}
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	return nil
}
