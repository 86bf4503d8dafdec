package kernel

import "github.com/born-ml/hostkernel/internal/ndrange"

// ForEach runs k over rng with the default launcher.
func ForEach(rng ndrange.Extent, k ItemFunc) error {
	return Default().ForEach(rng, k)
}

// ForEachWithOffset runs k over [offset, offset+rng) with the default launcher.
func ForEachWithOffset(rng ndrange.Extent, offset ndrange.Index, k ItemFunc) error {
	return Default().ForEachWithOffset(rng, offset, k)
}

// ForEachGroup runs k once per group of space with the default launcher.
func ForEachGroup(space ndrange.HierarchicalSpace, k GroupFunc) error {
	return Default().ForEachGroup(space, k)
}

// ForEachWorkItem runs k once per work-item of space with the default launcher.
func ForEachWorkItem(space ndrange.HierarchicalSpace, k WorkItemFunc) error {
	return Default().ForEachWorkItem(space, k)
}
