// Package kernel implements the host dispatch engine: it enumerates flat and
// hierarchical iteration spaces and invokes kernel callbacks once per
// coordinate.
//
// Every dispatch call is synchronous. The outermost dimension of the space
// is distributed over a worker pool; each worker walks the remaining
// dimensions in ascending order with its own private index. No ordering is
// guaranteed across workers.
//
// Failure semantics: the first error returned by a kernel stops the dispatch
// cooperatively. No new outer slice starts, and slices already running stop
// before their next coordinate; a kernel call in progress is never
// interrupted. The error is returned unchanged once every worker has
// stopped. A kernel panic is re-raised on the calling goroutine the same way.
package kernel

import (
	"fmt"

	"github.com/born-ml/hostkernel/internal/ndrange"
	"github.com/born-ml/hostkernel/internal/parallel"
)

type (
	// ItemFunc is a kernel over a flat iteration space.
	ItemFunc func(it ndrange.Item) error

	// GroupFunc is a kernel invoked once per work-group.
	GroupFunc func(g ndrange.GroupRef) error

	// WorkItemFunc is a kernel invoked once per work-item.
	WorkItemFunc func(w ndrange.WorkItem) error
)

// Launcher runs kernels on a worker pool.
type Launcher struct {
	pool *parallel.Pool
	cfg  parallel.Config
}

// New creates a launcher on pool with the given parallelism settings.
// A nil pool means the process-wide pool.
func New(pool *parallel.Pool, cfg parallel.Config) *Launcher {
	if pool == nil {
		pool = parallel.Default()
	}
	return &Launcher{pool: pool, cfg: cfg}
}

// Default returns a launcher on the process-wide pool using every CPU.
func Default() *Launcher {
	return New(parallel.Default(), parallel.DefaultConfig())
}

// Config returns the parallelism settings.
func (l *Launcher) Config() parallel.Config {
	return l.cfg
}

// ForEach invokes k once for every index in [0, rng).
func (l *Launcher) ForEach(rng ndrange.Extent, k ItemFunc) error {
	checkExtent("for each", rng)
	return l.ForEachWithOffset(rng, ndrange.ZeroIndex(rng.Rank()), k)
}

// ForEachWithOffset invokes k once for every index in [offset, offset+rng).
// Each item's GlobalID already includes the offset.
func (l *Launcher) ForEachWithOffset(rng ndrange.Extent, offset ndrange.Index, k ItemFunc) error {
	checkExtent("for each", rng)
	if offset.Rank() != rng.Rank() {
		panic(fmt.Sprintf("for each: offset rank %d does not match range rank %d", offset.Rank(), rng.Rank()))
	}
	return l.iterate(rng, func(rel ndrange.Index) error {
		return k(ndrange.NewItem(rng, ndrange.Add(rel, offset), offset))
	})
}

// ForEachGroup invokes k once for every group of space.
// Groups are distributed over the pool like the outer dimension of ForEach.
func (l *Launcher) ForEachGroup(space ndrange.HierarchicalSpace, k GroupFunc) error {
	return l.iterate(space.GroupCount(), func(id ndrange.Index) error {
		return k(ndrange.NewGroupRef(space, id))
	})
}

// ForEachWorkItem invokes k once for every work-item of space: groups run
// in parallel, the work-items of one group run sequentially on the worker
// that owns the group.
func (l *Launcher) ForEachWorkItem(space ndrange.HierarchicalSpace, k WorkItemFunc) error {
	return l.ForEachGroup(space, func(g ndrange.GroupRef) error {
		return ForEachItemInGroup(g, k)
	})
}

// ForEachItemInGroup invokes k sequentially for every work-item of g, on the
// calling goroutine. It is meant to be called from a GroupFunc.
//
// Work-items of a trailing, partially filled group whose global index falls
// outside [offset, offset+global) are skipped.
func ForEachItemInGroup(g ndrange.GroupRef, k WorkItemFunc) error {
	space := g.Space()
	origin := g.Origin()
	return walk(space.Local(), 0, ndrange.ZeroIndex(space.Rank()), running, func(local ndrange.Index) error {
		global := ndrange.Add(origin, local)
		if !space.Contains(global) {
			return nil
		}
		return k(ndrange.NewWorkItem(global, local, space))
	})
}

// SingleTask runs k once on the calling goroutine.
func SingleTask(k func() error) error {
	return k()
}

// iterate calls visit for every index in [0, rng), distributing the
// outermost dimension over the pool.
func (l *Launcher) iterate(rng ndrange.Extent, visit func(ndrange.Index) error) error {
	if rng.Size() == 0 {
		return nil
	}
	origin := ndrange.ZeroIndex(rng.Rank())
	return l.pool.ForStoppable(rng.Get(0), func(i int, stopped func() bool) error {
		return walk(rng, 1, origin.With(0, i), stopped, visit)
	}, l.cfg)
}

// walk enumerates dimensions dim..rank-1 of rng in ascending order, outer to
// inner. idx is passed by value, so every caller owns its copy. Once stopped
// reports true no further coordinate is visited.
func walk(rng ndrange.Extent, dim int, idx ndrange.Index, stopped func() bool, visit func(ndrange.Index) error) error {
	if dim == rng.Rank() {
		if stopped() {
			return nil
		}
		return visit(idx)
	}
	for i, n := 0, rng.Get(dim); i < n; i++ {
		if err := walk(rng, dim+1, idx.With(dim, i), stopped, visit); err != nil {
			return err
		}
	}
	return nil
}

// running never asks a sequential walk to stop.
func running() bool { return false }

func checkExtent(op string, rng ndrange.Extent) {
	if err := rng.Validate(); err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
}
