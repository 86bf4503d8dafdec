// Package workload provides built-in kernels that exercise the dispatch
// engine end to end and verify their own output.
package workload

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/born-ml/hostkernel/internal/config"
	"github.com/born-ml/hostkernel/internal/ctxlog"
	"github.com/born-ml/hostkernel/internal/kernel"
)

var (
	// ErrUnknownWorkload is returned for a workload kind with no runner.
	ErrUnknownWorkload = errors.New("unknown workload")

	// ErrMismatch is returned when a kernel's output differs from the host
	// reference.
	ErrMismatch = errors.New("result mismatch")

	// ErrShape is returned when a workload is configured with a rank or
	// extent its kernel does not support.
	ErrShape = errors.New("unsupported shape")
)

// Result describes one verified workload run.
type Result struct {
	Kind     string
	Elements int
	Duration time.Duration
}

// runner executes a workload on l and returns the number of output elements.
type runner func(ctx context.Context, l *kernel.Launcher, w config.Workload) (int, error)

var runners = map[string]runner{
	"vecadd":    runVecAdd,
	"matmul":    runMatMul,
	"transpose": runTranspose,
	"stencil":   runStencil,
}

// Kinds returns the supported workload kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(runners))
	for k := range runners {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Run executes and verifies a single workload.
func Run(ctx context.Context, l *kernel.Launcher, w config.Workload) (Result, error) {
	run, ok := runners[w.Kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownWorkload, w.Kind, Kinds())
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Running workload", "kind", w.Kind, "global", w.Global, "local", w.Local, "offset", w.Offset)

	start := time.Now()
	n, err := run(ctx, l, w)
	if err != nil {
		return Result{}, fmt.Errorf("workload %s: %w", w.Kind, err)
	}
	return Result{Kind: w.Kind, Elements: n, Duration: time.Since(start)}, nil
}

// RunAll executes every workload of m, m.Repeat times each, on a launcher
// built from m.Engine. It stops at the first failure.
func RunAll(ctx context.Context, m *config.Model) ([]Result, error) {
	l := kernel.New(nil, m.Engine)
	logger := ctxlog.FromContext(ctx)

	results := make([]Result, 0, len(m.Workloads)*m.Repeat)
	for _, w := range m.Workloads {
		for i := 0; i < m.Repeat; i++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			res, err := Run(ctx, l, w)
			if err != nil {
				return results, err
			}
			logger.Info("Workload verified",
				"kind", res.Kind, "run", i+1, "elements", res.Elements, "duration", res.Duration)
			results = append(results, res)
		}
	}
	return results, nil
}

func requireRank(w config.Workload, rank int) error {
	if w.Global.Rank() != rank {
		return fmt.Errorf("%w: %s needs a rank-%d global extent, got %v", ErrShape, w.Kind, rank, w.Global)
	}
	return nil
}

// requireNoOffset rejects an offset on kernels that index from the origin.
func requireNoOffset(w config.Workload) error {
	for _, v := range w.Offset.Dims() {
		if v != 0 {
			return fmt.Errorf("%w: %s does not take an offset, got %v", ErrShape, w.Kind, w.Offset)
		}
	}
	return nil
}

// compare checks got against want element by element.
func compare[T comparable](got, want []T) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: %d elements, want %d", ErrMismatch, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%w: element %d: got %v, want %v", ErrMismatch, i, got[i], want[i])
		}
	}
	return nil
}
