package workload

import (
	"context"
	"fmt"

	"github.com/born-ml/hostkernel/internal/buffer"
	"github.com/born-ml/hostkernel/internal/config"
	"github.com/born-ml/hostkernel/internal/kernel"
	"github.com/born-ml/hostkernel/internal/ndrange"
)

// defaultTile is the work-group edge used by transpose when the workload
// has no local extent.
const defaultTile = 8

// runVecAdd computes c = a + b over a 1-D range. a is an owned copy of host
// data, b borrows host memory read-only.
func runVecAdd(_ context.Context, l *kernel.Launcher, w config.Workload) (int, error) {
	if err := requireRank(w, 1); err != nil {
		return 0, err
	}
	if err := requireNoOffset(w); err != nil {
		return 0, err
	}
	n := w.Global.Get(0)

	hostA := make([]float32, n)
	hostB := make([]float32, n)
	for i := range hostA {
		hostA[i] = float32(i)
		hostB[i] = float32((2 * i) % 1024)
	}

	a, err := buffer.NewFromSlice(hostA)
	if err != nil {
		return 0, err
	}
	defer a.Release()
	b, err := buffer.NewBorrowed(hostB, w.Global, true)
	if err != nil {
		return 0, err
	}
	defer b.Release()
	c, err := buffer.NewOwned[float32](w.Global)
	if err != nil {
		return 0, err
	}
	defer c.Release()

	va := a.GetView(buffer.Read, buffer.GlobalBuffer)
	vb := b.GetView(buffer.Read, buffer.ConstantBuffer)
	vc := c.GetView(buffer.DiscardWrite, buffer.GlobalBuffer)

	err = l.ForEach(w.Global, func(it ndrange.Item) error {
		*vc.AtItem(it) = *va.AtItem(it) + *vb.AtItem(it)
		return nil
	})
	if err != nil {
		return 0, err
	}

	want := make([]float32, n)
	for i := range want {
		want[i] = hostA[i] + hostB[i]
	}
	return n, compare(c.CopyOut(), want)
}

// runMatMul computes C[M,N] = A[M,K] x B[K,N] with K = N. The inputs are
// initialized by kernels as well.
func runMatMul(_ context.Context, l *kernel.Launcher, w config.Workload) (int, error) {
	if err := requireRank(w, 2); err != nil {
		return 0, err
	}
	if err := requireNoOffset(w); err != nil {
		return 0, err
	}
	m, n := w.Global.Get(0), w.Global.Get(1)
	k := n

	a, err := buffer.NewOwned[float32](ndrange.NewExtent(m, k))
	if err != nil {
		return 0, err
	}
	defer a.Release()
	b, err := buffer.NewOwned[float32](ndrange.NewExtent(k, n))
	if err != nil {
		return 0, err
	}
	defer b.Release()
	c, err := buffer.NewOwned[float32](w.Global)
	if err != nil {
		return 0, err
	}
	defer c.Release()

	va := a.GetView(buffer.Write, buffer.GlobalBuffer)
	vb := b.GetView(buffer.Write, buffer.GlobalBuffer)
	vc := c.GetView(buffer.Write, buffer.GlobalBuffer)

	if err := l.ForEach(a.Extent(), func(it ndrange.Item) error {
		*va.AtItem(it) = float32((it.Get(0) + it.Get(1)) % 7)
		return nil
	}); err != nil {
		return 0, err
	}
	if err := l.ForEach(b.Extent(), func(it ndrange.Item) error {
		*vb.AtItem(it) = float32((it.Get(0) * it.Get(1)) % 5)
		return nil
	}); err != nil {
		return 0, err
	}

	err = l.ForEach(w.Global, func(it ndrange.Item) error {
		i, j := it.Get(0), it.Get(1)
		var sum float32
		for p := 0; p < k; p++ {
			sum += va.Load(ndrange.NewIndex(i, p)) * vb.Load(ndrange.NewIndex(p, j))
		}
		*vc.AtItem(it) = sum
		return nil
	})
	if err != nil {
		return 0, err
	}

	want := make([]float32, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float32
			for p := 0; p < k; p++ {
				sum += float32((i+p)%7) * float32((p*j)%5)
			}
			want[i*n+j] = sum
		}
	}
	return m * n, compare(c.CopyOut(), want)
}

// runTranspose writes out[j,i] = in[i,j] with a two-level dispatch: one
// group kernel per tile, each walking its work-items sequentially.
func runTranspose(_ context.Context, l *kernel.Launcher, w config.Workload) (int, error) {
	if err := requireRank(w, 2); err != nil {
		return 0, err
	}
	if err := requireNoOffset(w); err != nil {
		return 0, err
	}
	rows, cols := w.Global.Get(0), w.Global.Get(1)
	local := ndrange.NewExtent(defaultTile, defaultTile)
	if w.HasLocal() {
		local = w.Local
	}

	in, err := buffer.NewOwned[int32](w.Global)
	if err != nil {
		return 0, err
	}
	defer in.Release()
	out, err := buffer.NewOwned[int32](ndrange.NewExtent(cols, rows))
	if err != nil {
		return 0, err
	}
	defer out.Release()

	vin := in.GetView(buffer.ReadWrite, buffer.GlobalBuffer)
	vout := out.GetView(buffer.DiscardWrite, buffer.GlobalBuffer)

	if err := l.ForEach(w.Global, func(it ndrange.Item) error {
		*vin.AtItem(it) = int32(it.LinearID())
		return nil
	}); err != nil {
		return 0, err
	}

	space := ndrange.NewHierarchicalSpace(w.Global, local)
	err = l.ForEachGroup(space, func(g ndrange.GroupRef) error {
		return kernel.ForEachItemInGroup(g, func(wi ndrange.WorkItem) error {
			i, j := wi.GlobalIDDim(0), wi.GlobalIDDim(1)
			vout.Store(ndrange.NewIndex(j, i), vin.Load(wi.GlobalID()))
			return nil
		})
	})
	if err != nil {
		return 0, err
	}

	want := make([]int32, rows*cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			want[j*rows+i] = int32(i*cols + j)
		}
	}
	return rows * cols, compare(out.CopyOut(), want)
}

// runStencil computes a 3-point average over [offset, offset+global) of a
// borrowed input padded by offset elements on both sides. The kernel reads
// through its own handle on the input buffer.
func runStencil(_ context.Context, l *kernel.Launcher, w config.Workload) (int, error) {
	if err := requireRank(w, 1); err != nil {
		return 0, err
	}
	n, halo := w.Global.Get(0), w.Offset.Get(0)
	if halo < 1 {
		return 0, fmt.Errorf("%w: stencil needs an offset >= 1, got %d", ErrShape, halo)
	}
	padded := ndrange.NewExtent(n + 2*halo)

	host := make([]float64, padded.Size())
	for i := range host {
		host[i] = float64(i % 13)
	}

	in, err := buffer.NewBorrowed(host, padded, true)
	if err != nil {
		return 0, err
	}
	defer in.Release()
	out, err := buffer.NewOwned[float64](padded)
	if err != nil {
		return 0, err
	}
	defer out.Release()

	reader := in.CopyHandle()
	defer reader.Release()
	vin := reader.GetView(buffer.Read, buffer.GlobalBuffer)
	vout := out.GetView(buffer.Write, buffer.GlobalBuffer)

	err = l.ForEachWithOffset(w.Global, w.Offset, func(it ndrange.Item) error {
		i := it.Get(0)
		sum := *vin.At(i-1) + *vin.At(i) + *vin.At(i+1)
		*vout.AtItem(it) = sum / 3
		return nil
	})
	if err != nil {
		return 0, err
	}

	want := make([]float64, padded.Size())
	for i := halo; i < halo+n; i++ {
		want[i] = (host[i-1] + host[i] + host[i+1]) / 3
	}
	return n, compare(out.CopyOut(), want)
}
