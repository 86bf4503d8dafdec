// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package compute

import "github.com/born-ml/hostkernel/internal/ndrange"

// MaxRank is the highest supported number of dimensions.
const MaxRank = ndrange.MaxRank

// Coordinate is a fixed-rank vector of 1 to 3 signed integers.
type Coordinate = ndrange.Coordinate

// Extent is the size of a space along each dimension.
type Extent = ndrange.Extent

// Index is a position along each dimension.
type Index = ndrange.Index

// Coord is satisfied by Coordinate, Extent and Index.
type Coord = ndrange.Coord

// HierarchicalSpace is a global extent split into work-groups of a local
// extent, translated by an offset.
type HierarchicalSpace = ndrange.HierarchicalSpace

// Item is the context of one point of a flat dispatch.
type Item = ndrange.Item

// GroupRef is the context of one work-group.
type GroupRef = ndrange.GroupRef

// WorkItem is the context of one work-item within a work-group.
type WorkItem = ndrange.WorkItem

// NewExtent creates an extent from 1 to 3 sizes.
func NewExtent(dims ...int) Extent { return ndrange.NewExtent(dims...) }

// NewIndex creates an index from 1 to 3 positions.
func NewIndex(vals ...int) Index { return ndrange.NewIndex(vals...) }

// ZeroIndex returns the origin of a rank-dimensional space.
func ZeroIndex(rank int) Index { return ndrange.ZeroIndex(rank) }

// NewHierarchicalSpace builds a space; offset defaults to zero.
func NewHierarchicalSpace(global, local Extent, offset ...Index) HierarchicalSpace {
	return ndrange.NewHierarchicalSpace(global, local, offset...)
}

// Add returns a + b elementwise.
func Add[C Coord](a, b C) C { return ndrange.Add(a, b) }

// Sub returns a - b elementwise.
func Sub[C Coord](a, b C) C { return ndrange.Sub(a, b) }

// Mul returns a * b elementwise.
func Mul[C Coord](a, b C) C { return ndrange.Mul(a, b) }

// CeilDiv returns a / b elementwise, rounded up.
func CeilDiv[C Coord](a, b C) C { return ndrange.CeilDiv(a, b) }
