package ndrange

// Item identifies one point of a flat iteration space.
// The engine builds a fresh Item for every coordinate; kernels receive it by
// value and cannot affect the traversal through it.
type Item struct {
	rng    Extent
	id     Index
	offset Index
}

// NewItem assembles an item. The engine is the usual caller; it is exported
// for tests and for kernels invoked outside a dispatch.
func NewItem(rng Extent, global, offset Index) Item {
	return Item{rng: rng, id: global, offset: offset}
}

// GlobalID returns the global index, offset included.
func (it Item) GlobalID() Index { return it.id }

// Get returns the global index along dim.
func (it Item) Get(dim int) int { return it.id.Get(dim) }

// GlobalRange returns the extent being enumerated.
func (it Item) GlobalRange() Extent { return it.rng }

// Offset returns the origin the range was translated by.
func (it Item) Offset() Index { return it.offset }

// LinearID returns the row-major rank of the item within its range,
// ignoring the offset.
func (it Item) LinearID() int { return it.rng.Linearize(Sub(it.id, it.offset)) }

// GroupRef identifies one work-group of a HierarchicalSpace.
type GroupRef struct {
	space HierarchicalSpace
	id    Index
}

// NewGroupRef assembles a group reference.
func NewGroupRef(space HierarchicalSpace, id Index) GroupRef {
	return GroupRef{space: space, id: id}
}

// GroupID returns the group coordinate in [0, GroupRange()).
func (g GroupRef) GroupID() Index { return g.id }

// Get returns the group coordinate along dim.
func (g GroupRef) Get(dim int) int { return g.id.Get(dim) }

// Space returns the enclosing space.
func (g GroupRef) Space() HierarchicalSpace { return g.space }

// LocalRange returns the work-group extent.
func (g GroupRef) LocalRange() Extent { return g.space.local }

// GlobalRange returns the global extent of the enclosing space.
func (g GroupRef) GlobalRange() Extent { return g.space.global }

// GroupRange returns the number of groups along each dimension.
func (g GroupRef) GroupRange() Extent { return g.space.GroupCount() }

// Offset returns the origin of the enclosing space.
func (g GroupRef) Offset() Index { return g.space.offset }

// Origin returns the global index of the group's first work-item:
// group_id * local + offset.
func (g GroupRef) Origin() Index {
	return Add(Index(Mul(g.id.AsExtent(), g.space.local)), g.space.offset)
}

// WorkItem identifies one work-item inside a work-group.
// GlobalID() == GroupID()*LocalRange() + LocalID() + Offset() always holds for
// work-items produced by the engine.
type WorkItem struct {
	global Index
	local  Index
	space  HierarchicalSpace
}

// NewWorkItem assembles a work-item.
func NewWorkItem(global, local Index, space HierarchicalSpace) WorkItem {
	return WorkItem{global: global, local: local, space: space}
}

// GlobalID returns the global index, offset included.
func (w WorkItem) GlobalID() Index { return w.global }

// LocalID returns the index within the work-group.
func (w WorkItem) LocalID() Index { return w.local }

// GlobalIDDim returns the global index along dim.
func (w WorkItem) GlobalIDDim(dim int) int { return w.global.Get(dim) }

// LocalIDDim returns the local index along dim.
func (w WorkItem) LocalIDDim(dim int) int { return w.local.Get(dim) }

// GroupID returns the coordinate of the enclosing group.
func (w WorkItem) GroupID() Index {
	base := Sub(Sub(w.global, w.space.offset), w.local)
	g := Index{rank: base.rank}
	for i := 0; i < base.rank; i++ {
		g.v[i] = base.v[i] / w.space.local.v[i]
	}
	return g
}

// LinearLocalID returns the row-major rank of the work-item in its group.
func (w WorkItem) LinearLocalID() int { return w.space.local.Linearize(w.local) }

// GlobalRange returns the global extent of the enclosing space.
func (w WorkItem) GlobalRange() Extent { return w.space.global }

// LocalRange returns the work-group extent.
func (w WorkItem) LocalRange() Extent { return w.space.local }

// Offset returns the origin of the enclosing space.
func (w WorkItem) Offset() Index { return w.space.offset }

// Space returns the enclosing space.
func (w WorkItem) Space() HierarchicalSpace { return w.space }
