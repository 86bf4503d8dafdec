// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package compute

import (
	"github.com/born-ml/hostkernel/internal/kernel"
	"github.com/born-ml/hostkernel/internal/parallel"
)

// Launcher runs kernels with a given parallelism configuration.
type Launcher = kernel.Launcher

// Config controls how a Launcher splits work.
type Config = parallel.Config

// Pool is a fixed set of worker goroutines.
type Pool = parallel.Pool

// DefaultConfig uses every CPU.
func DefaultConfig() Config { return parallel.DefaultConfig() }

// SequentialConfig runs every dispatch on the calling goroutine.
func SequentialConfig() Config { return parallel.Sequential() }

// NewLauncher creates a launcher; a nil pool means the process-wide pool.
func NewLauncher(pool *Pool, cfg Config) *Launcher { return kernel.New(pool, cfg) }

// NewPool starts a dedicated pool; workers <= 0 means one per CPU.
func NewPool(workers int) *Pool { return parallel.NewPool(workers) }

// ForEach invokes k once for every index in [0, rng).
func ForEach(rng Extent, k func(Item) error) error {
	return kernel.ForEach(rng, k)
}

// ForEachWithOffset invokes k once for every index in [offset, offset+rng).
func ForEachWithOffset(rng Extent, offset Index, k func(Item) error) error {
	return kernel.ForEachWithOffset(rng, offset, k)
}

// ForEachGroup invokes k once for every work-group of space.
func ForEachGroup(space HierarchicalSpace, k func(GroupRef) error) error {
	return kernel.ForEachGroup(space, k)
}

// ForEachItemInGroup invokes k for every work-item of g on the calling
// goroutine. Work-items past the global range are skipped.
func ForEachItemInGroup(g GroupRef, k func(WorkItem) error) error {
	return kernel.ForEachItemInGroup(g, k)
}

// ForEachWorkItem runs every work-item of space, group by group.
func ForEachWorkItem(space HierarchicalSpace, k func(WorkItem) error) error {
	return kernel.ForEachWorkItem(space, k)
}

// SingleTask runs k once.
func SingleTask(k func() error) error {
	return kernel.SingleTask(k)
}
