package workload

import (
	"context"
	"testing"

	"github.com/born-ml/hostkernel/internal/config"
	"github.com/born-ml/hostkernel/internal/kernel"
	"github.com/born-ml/hostkernel/internal/ndrange"
	"github.com/born-ml/hostkernel/internal/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLaunchers() map[string]*kernel.Launcher {
	return map[string]*kernel.Launcher{
		"sequential": kernel.New(nil, parallel.Sequential()),
		"parallel":   kernel.New(nil, parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}),
	}
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []string{"matmul", "stencil", "transpose", "vecadd"}, Kinds())
}

func TestRun(t *testing.T) {
	workloads := []config.Workload{
		{Kind: "vecadd", Global: ndrange.NewExtent(1000), Offset: ndrange.ZeroIndex(1)},
		{Kind: "vecadd", Global: ndrange.NewExtent(0), Offset: ndrange.ZeroIndex(1)},
		{Kind: "matmul", Global: ndrange.NewExtent(17, 9), Offset: ndrange.ZeroIndex(2)},
		{Kind: "transpose", Global: ndrange.NewExtent(30, 20), Local: ndrange.NewExtent(4, 8), Offset: ndrange.ZeroIndex(2)},
		{Kind: "transpose", Global: ndrange.NewExtent(13, 7), Offset: ndrange.ZeroIndex(2)},
		{Kind: "stencil", Global: ndrange.NewExtent(257), Offset: ndrange.NewIndex(1)},
		{Kind: "stencil", Global: ndrange.NewExtent(64), Offset: ndrange.NewIndex(5)},
	}
	for name, l := range testLaunchers() {
		for _, w := range workloads {
			t.Run(name+"/"+w.Kind+w.Global.String(), func(t *testing.T) {
				res, err := Run(context.Background(), l, w)
				require.NoError(t, err)
				assert.Equal(t, w.Kind, res.Kind)
				assert.Equal(t, w.Global.Size(), res.Elements)
			})
		}
	}
}

func TestRun_Errors(t *testing.T) {
	l := kernel.Default()
	ctx := context.Background()

	_, err := Run(ctx, l, config.Workload{Kind: "fft", Global: ndrange.NewExtent(8)})
	assert.ErrorIs(t, err, ErrUnknownWorkload)

	_, err = Run(ctx, l, config.Workload{Kind: "matmul", Global: ndrange.NewExtent(8), Offset: ndrange.ZeroIndex(1)})
	assert.ErrorIs(t, err, ErrShape)

	_, err = Run(ctx, l, config.Workload{Kind: "stencil", Global: ndrange.NewExtent(8), Offset: ndrange.ZeroIndex(1)})
	assert.ErrorIs(t, err, ErrShape)
}

func TestRun_RejectsOffsetOnOriginKernels(t *testing.T) {
	l := kernel.Default()
	for _, w := range []config.Workload{
		{Kind: "vecadd", Global: ndrange.NewExtent(16), Offset: ndrange.NewIndex(2)},
		{Kind: "matmul", Global: ndrange.NewExtent(4, 4), Offset: ndrange.NewIndex(0, 1)},
		{Kind: "transpose", Global: ndrange.NewExtent(4, 6), Offset: ndrange.NewIndex(3, 0)},
	} {
		t.Run(w.Kind, func(t *testing.T) {
			_, err := Run(context.Background(), l, w)
			require.ErrorIs(t, err, ErrShape)
			assert.Contains(t, err.Error(), "offset")
		})
	}

	// An omitted offset is accepted.
	_, err := Run(context.Background(), l, config.Workload{Kind: "vecadd", Global: ndrange.NewExtent(16)})
	require.NoError(t, err)
}

func TestRunAll(t *testing.T) {
	m := config.Default()
	m.Repeat = 2

	results, err := RunAll(context.Background(), m)
	require.NoError(t, err)
	assert.Len(t, results, 2*len(m.Workloads))
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := RunAll(ctx, config.Default())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestCompare(t *testing.T) {
	require.NoError(t, compare([]int{1, 2}, []int{1, 2}))
	assert.ErrorIs(t, compare([]int{1, 3}, []int{1, 2}), ErrMismatch)
	assert.ErrorIs(t, compare([]int{1}, []int{1, 2}), ErrMismatch)
}
