// Package config loads workload files for the hostkernel CLI.
//
// A workload file is HCL:
//
//	workers   = cpus      # `cpus` is the host's CPU count
//	min_chunk = 1
//	repeat    = 3
//
//	workload "vecadd" {
//	  global = [pow2(20)]
//	}
//
//	workload "transpose" {
//	  global = [512, 512]
//	  local  = [16, 16]
//	}
//
// Extents are lists of 1 to 3 integers. The file is decoded into the
// format-agnostic Model consumed by the workload runner.
package config

import (
	"context"
	"fmt"
	"runtime"

	"github.com/born-ml/hostkernel/internal/ctxlog"
	"github.com/born-ml/hostkernel/internal/ndrange"
	"github.com/born-ml/hostkernel/internal/parallel"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Model is the decoded, validated configuration.
type Model struct {
	Engine    parallel.Config
	Repeat    int
	Workloads []Workload
}

// Workload is one kernel run request.
type Workload struct {
	Kind   string
	Global ndrange.Extent
	Local  ndrange.Extent // Rank 0 when the file gives no local extent.
	Offset ndrange.Index  // Zero index when the file gives no offset.
}

// HasLocal reports whether a work-group extent was configured.
func (w Workload) HasLocal() bool {
	return w.Local.Rank() != 0
}

// hclFile is the top-level structure of a workload file for decoding.
type hclFile struct {
	Workers   *int           `hcl:"workers,optional"`
	MinChunk  *int           `hcl:"min_chunk,optional"`
	Parallel  *bool          `hcl:"parallel,optional"`
	Repeat    *int           `hcl:"repeat,optional"`
	Workloads []*hclWorkload `hcl:"workload,block"`
}

type hclWorkload struct {
	Kind   string `hcl:"kind,label"`
	Global []int  `hcl:"global"`
	Local  []int  `hcl:"local,optional"`
	Offset []int  `hcl:"offset,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Model {
	return &Model{
		Engine: parallel.DefaultConfig(),
		Repeat: 1,
		Workloads: []Workload{
			{Kind: "vecadd", Global: ndrange.NewExtent(1 << 16), Offset: ndrange.ZeroIndex(1)},
			{Kind: "matmul", Global: ndrange.NewExtent(64, 64), Offset: ndrange.ZeroIndex(2)},
			{Kind: "transpose", Global: ndrange.NewExtent(256, 192), Local: ndrange.NewExtent(16, 16), Offset: ndrange.ZeroIndex(2)},
			{Kind: "stencil", Global: ndrange.NewExtent(4096), Offset: ndrange.NewIndex(1)},
		},
	}
}

// Load reads and decodes a workload file.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading workload file", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return decode(ctx, file, path)
}

// Parse decodes a workload file held in memory; filename is used in
// diagnostics only.
func Parse(ctx context.Context, src []byte, filename string) (*Model, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(ctx, file, filename)
}

func decode(ctx context.Context, file *hcl.File, filename string) (*Model, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	m := Default()
	m.Workloads = nil
	if parsed.Workers != nil {
		if *parsed.Workers < 1 {
			return nil, fmt.Errorf("%s: workers must be >= 1, got %d", filename, *parsed.Workers)
		}
		m.Engine.NumWorkers = *parsed.Workers
		m.Engine.Enabled = *parsed.Workers > 1
	}
	if parsed.MinChunk != nil {
		if *parsed.MinChunk < 1 {
			return nil, fmt.Errorf("%s: min_chunk must be >= 1, got %d", filename, *parsed.MinChunk)
		}
		m.Engine.MinChunkSize = *parsed.MinChunk
	}
	if parsed.Parallel != nil {
		m.Engine.Enabled = *parsed.Parallel && m.Engine.NumWorkers > 1
	}
	if parsed.Repeat != nil {
		if *parsed.Repeat < 1 {
			return nil, fmt.Errorf("%s: repeat must be >= 1, got %d", filename, *parsed.Repeat)
		}
		m.Repeat = *parsed.Repeat
	}

	for _, pw := range parsed.Workloads {
		w, err := newWorkload(pw)
		if err != nil {
			return nil, fmt.Errorf("%s: workload %q: %w", filename, pw.Kind, err)
		}
		m.Workloads = append(m.Workloads, w)
	}

	ctxlog.FromContext(ctx).Debug("Workload file decoded",
		"path", filename, "workloads", len(m.Workloads), "workers", m.Engine.NumWorkers)
	return m, nil
}

func newWorkload(pw *hclWorkload) (Workload, error) {
	global, err := extentFrom("global", pw.Global)
	if err != nil {
		return Workload{}, err
	}
	w := Workload{Kind: pw.Kind, Global: global, Offset: ndrange.ZeroIndex(global.Rank())}

	if pw.Local != nil {
		local, err := extentFrom("local", pw.Local)
		if err != nil {
			return Workload{}, err
		}
		if local.Rank() != global.Rank() {
			return Workload{}, fmt.Errorf("local rank %d does not match global rank %d", local.Rank(), global.Rank())
		}
		for i, d := range local.Dims() {
			if d < 1 {
				return Workload{}, fmt.Errorf("local size %d at dimension %d must be positive", d, i)
			}
		}
		w.Local = local
	}
	if pw.Offset != nil {
		if len(pw.Offset) != global.Rank() {
			return Workload{}, fmt.Errorf("offset rank %d does not match global rank %d", len(pw.Offset), global.Rank())
		}
		w.Offset = ndrange.NewIndex(pw.Offset...)
	}
	return w, nil
}

func extentFrom(attr string, dims []int) (ndrange.Extent, error) {
	if len(dims) < 1 || len(dims) > ndrange.MaxRank {
		return ndrange.Extent{}, fmt.Errorf("%s must have 1 to %d dimensions, got %d", attr, ndrange.MaxRank, len(dims))
	}
	e := ndrange.NewExtent(dims...)
	if err := e.Validate(); err != nil {
		return ndrange.Extent{}, fmt.Errorf("%s: %w", attr, err)
	}
	return e, nil
}

// evalContext exposes host facts and helpers to workload expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cpus": cty.NumberIntVal(int64(runtime.NumCPU())),
		},
		Functions: map[string]function.Function{
			"pow2": pow2Func,
		},
	}
}
