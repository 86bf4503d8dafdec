package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/born-ml/hostkernel/internal/ndrange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `
workers   = 4
min_chunk = 2
repeat    = 3

workload "vecadd" {
  global = [pow2(10)]
}

workload "transpose" {
  global = [64, 32]
  local  = [8, 8]
}

workload "stencil" {
  global = [100]
  offset = [1]
}
`
	m, err := Parse(context.Background(), []byte(src), "test.hcl")
	require.NoError(t, err)

	assert.True(t, m.Engine.Enabled)
	assert.Equal(t, 4, m.Engine.NumWorkers)
	assert.Equal(t, 2, m.Engine.MinChunkSize)
	assert.Equal(t, 3, m.Repeat)

	require.Len(t, m.Workloads, 3)
	assert.Equal(t, Workload{
		Kind:   "vecadd",
		Global: ndrange.NewExtent(1024),
		Offset: ndrange.ZeroIndex(1),
	}, m.Workloads[0])
	assert.False(t, m.Workloads[0].HasLocal())

	assert.True(t, m.Workloads[1].HasLocal())
	assert.Equal(t, ndrange.NewExtent(8, 8), m.Workloads[1].Local)
	assert.Equal(t, ndrange.NewIndex(1), m.Workloads[2].Offset)
}

func TestParse_CPUsVariable(t *testing.T) {
	m, err := Parse(context.Background(), []byte(`workers = cpus`), "cpus.hcl")
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), m.Engine.NumWorkers)
	assert.Empty(t, m.Workloads)
}

func TestParse_SequentialSwitch(t *testing.T) {
	m, err := Parse(context.Background(), []byte("workers = 8\nparallel = false\n"), "seq.hcl")
	require.NoError(t, err)
	assert.False(t, m.Engine.Enabled)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `workload "x" {`, "failed to parse"},
		{"unknown attribute", `threads = 3`, "failed to decode"},
		{"missing global", `workload "vecadd" {}`, "failed to decode"},
		{"rank 4", `workload "vecadd" { global = [1, 2, 3, 4] }`, "1 to 3 dimensions"},
		{"negative", `workload "vecadd" { global = [-1] }`, "must be >= 0"},
		{"local rank", `workload "t" { global = [4, 4] local = [2] }`, "local rank"},
		{"zero local", `workload "t" { global = [4] local = [0] }`, "must be positive"},
		{"offset rank", `workload "s" { global = [4] offset = [1, 1] }`, "offset rank"},
		{"workers", `workers = 0`, "workers must be >= 1"},
		{"repeat", `repeat = 0`, "repeat must be >= 1"},
		{"pow2 range", `workload "v" { global = [pow2(99)] }`, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workloads.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
workload "matmul" {
  global = [16, 16]
}
`), 0o600))

	m, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, m.Workloads, 1)
	assert.Equal(t, "matmul", m.Workloads[0].Kind)

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	m := Default()
	assert.Equal(t, 1, m.Repeat)
	assert.NotEmpty(t, m.Workloads)
	for _, w := range m.Workloads {
		assert.Equal(t, w.Global.Rank(), w.Offset.Rank(), w.Kind)
	}
}
