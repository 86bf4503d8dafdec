// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package compute is the public API of hostkernel: data-parallel kernels
// over 1-D to 3-D index spaces, run synchronously on the host.
//
// # Overview
//
// This package provides:
//   - Rank-generic coordinates (Extent, Index) with elementwise arithmetic
//   - Flat dispatch (ForEach, ForEachWithOffset) producing Item contexts
//   - Two-level dispatch over a HierarchicalSpace: ForEachGroup drives one
//     GroupRef per work-group and ForEachItemInGroup walks its WorkItems
//   - Buffers that own or borrow storage, shared through CopyHandle
//   - Views (accessors) that kernels index with an Item or an Index
//
// # Basic Usage
//
//	import "github.com/born-ml/hostkernel/compute"
//
//	func main() {
//	    out, _ := compute.NewOwned[int](compute.NewExtent(4))
//	    v := out.GetView(compute.Write, compute.GlobalBuffer)
//
//	    _ = compute.ForEach(compute.NewExtent(4), func(it compute.Item) error {
//	        *v.AtItem(it) = it.Get(0)
//	        return nil
//	    })
//	    // out now holds [0 1 2 3]
//	}
//
// # Hierarchical Dispatch
//
//	space := compute.NewHierarchicalSpace(compute.NewExtent(4, 4), compute.NewExtent(2, 2))
//	_ = compute.ForEachGroup(space, func(g compute.GroupRef) error {
//	    return compute.ForEachItemInGroup(g, func(w compute.WorkItem) error {
//	        // w.GlobalID() == g.GroupID()*w.LocalRange() + w.LocalID() + w.Offset()
//	        return nil
//	    })
//	})
//
// # Concurrency
//
// The outermost dimension (or the group range) is split across a
// process-wide pool sized to the host's CPU count. Every dispatch call blocks
// until all coordinates have been visited. Kernels must not assume any
// ordering across coordinates, and concurrent writes to the same element are
// the caller's responsibility.
//
// # Errors
//
// Misuse (rank mismatch, out-of-range view access, a write view of a
// read-only buffer) panics. A kernel error stops the dispatch cooperatively:
// no worker starts another coordinate, kernel calls already in progress
// finish, and the error is returned unchanged. A kernel panic is re-raised on
// the caller.
package compute
