package ndrange

import "fmt"

// HierarchicalSpace describes a two-level iteration space: a global extent
// cut into work-groups of a local extent, translated by an offset.
//
// The number of groups is CeilDiv(global, local). When local does not divide
// global, the last group along a dimension is only partly inside the global
// range; the engine masks the work-items that fall outside.
type HierarchicalSpace struct {
	global Extent
	local  Extent
	offset Index
}

// NewHierarchicalSpace builds a space from a global and a local extent and
// an optional offset (zero when omitted).
// Panics if the ranks differ, a global size is negative or a local size is
// not positive.
func NewHierarchicalSpace(global, local Extent, offset ...Index) HierarchicalSpace {
	checkRank("hierarchical space", global.rank)
	if local.rank != global.rank {
		panic(fmt.Sprintf("hierarchical space: local rank %d does not match global rank %d", local.rank, global.rank))
	}
	var off Index
	switch len(offset) {
	case 0:
		off = ZeroIndex(global.rank)
	case 1:
		off = offset[0]
		if off.rank != global.rank {
			panic(fmt.Sprintf("hierarchical space: offset rank %d does not match global rank %d", off.rank, global.rank))
		}
	default:
		panic("hierarchical space: at most one offset")
	}
	for i := 0; i < global.rank; i++ {
		if global.v[i] < 0 {
			panic(fmt.Sprintf("hierarchical space: negative global size %d at dimension %d", global.v[i], i))
		}
		if local.v[i] <= 0 {
			panic(fmt.Sprintf("hierarchical space: local size %d at dimension %d must be positive", local.v[i], i))
		}
	}
	return HierarchicalSpace{global: global, local: local, offset: off}
}

// Rank returns the number of dimensions.
func (s HierarchicalSpace) Rank() int { return s.global.rank }

// Global returns the global extent.
func (s HierarchicalSpace) Global() Extent { return s.global }

// Local returns the work-group extent.
func (s HierarchicalSpace) Local() Extent { return s.local }

// Offset returns the origin of the global range.
func (s HierarchicalSpace) Offset() Index { return s.offset }

// GroupCount returns the number of work-groups along each dimension.
func (s HierarchicalSpace) GroupCount() Extent { return CeilDiv(s.global, s.local) }

// Contains reports whether a global index lies in [offset, offset+global).
func (s HierarchicalSpace) Contains(global Index) bool {
	return s.global.Contains(Sub(global, s.offset))
}

func (s HierarchicalSpace) String() string {
	return fmt.Sprintf("global=%v local=%v offset=%v", s.global, s.local, s.offset)
}
