// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package compute_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/born-ml/hostkernel/compute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFlatDispatchIntoBuffer checks the 1-D scenario: writing each index
// into a length-4 buffer gives [0 1 2 3] whatever the worker count.
func TestFlatDispatchIntoBuffer(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 16} {
		cfg := compute.Config{Enabled: workers > 1, NumWorkers: workers, MinChunkSize: 1}
		l := compute.NewLauncher(nil, cfg)

		out, err := compute.NewOwned[int](compute.NewExtent(4))
		require.NoError(t, err)
		v := out.GetView(compute.Write, compute.GlobalBuffer)

		err = l.ForEach(compute.NewExtent(4), func(it compute.Item) error {
			*v.AtItem(it) = it.Get(0)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3}, out.CopyOut(), "workers=%d", workers)
	}
}

// TestHierarchicalScenario checks the 4x4 space with 2x2 groups.
func TestHierarchicalScenario(t *testing.T) {
	space := compute.NewHierarchicalSpace(compute.NewExtent(4, 4), compute.NewExtent(2, 2))
	require.Equal(t, compute.NewExtent(2, 2), space.GroupCount())

	var (
		mu  sync.Mutex
		got []compute.Index
	)
	err := compute.ForEachGroup(space, func(g compute.GroupRef) error {
		if !g.GroupID().Equal(compute.NewIndex(1, 0)) {
			return nil
		}
		return compute.ForEachItemInGroup(g, func(w compute.WorkItem) error {
			mu.Lock()
			got = append(got, w.GlobalID())
			mu.Unlock()
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []compute.Index{
		compute.NewIndex(2, 0), compute.NewIndex(2, 1),
		compute.NewIndex(3, 0), compute.NewIndex(3, 1),
	}, got)
}

func TestCopyHandleAliasing(t *testing.T) {
	a, err := compute.NewOwned[float64](compute.NewExtent(2, 2))
	require.NoError(t, err)
	b := a.CopyHandle()
	defer b.Release()

	a.GetView(compute.ReadWrite, compute.GlobalBuffer).Store(compute.NewIndex(1, 1), 2.5)
	assert.Equal(t, 2.5, b.GetView(compute.Read, compute.GlobalBuffer).Load(compute.NewIndex(1, 1)))
	a.Release()
}

func TestReadOnlyBorrowed(t *testing.T) {
	host := []uint8{1, 2, 3, 4}
	in, err := compute.NewBorrowed(host, compute.NewExtent(4), true)
	require.NoError(t, err)

	assert.Panics(t, func() { in.GetView(compute.Write, compute.GlobalBuffer) })

	v := in.GetView(compute.Read, compute.GlobalBuffer)
	for i, want := range host {
		assert.Equal(t, want, *v.At(i))
	}
}

func TestCoordinateArithmetic(t *testing.T) {
	a := compute.NewExtent(7, 9)
	b := compute.NewExtent(2, 4)
	assert.Equal(t, compute.NewExtent(4, 3), compute.CeilDiv(a, b))
	assert.Equal(t, compute.NewExtent(14, 36), compute.Mul(a, b))
	assert.Equal(t, compute.NewExtent(9, 13), compute.Add(a, b))
	assert.Equal(t, compute.NewExtent(5, 5), compute.Sub(a, b))
}

func TestKernelErrorReturned(t *testing.T) {
	errStop := errors.New("stop")
	err := compute.ForEachWithOffset(compute.NewExtent(8), compute.NewIndex(100), func(it compute.Item) error {
		if it.Get(0) == 104 {
			return errStop
		}
		return nil
	})
	assert.ErrorIs(t, err, errStop)
}

func TestSingleTaskAndPool(t *testing.T) {
	pool := compute.NewPool(2)
	defer pool.Close()
	l := compute.NewLauncher(pool, compute.DefaultConfig())

	var total int
	require.NoError(t, compute.SingleTask(func() error {
		return l.ForEach(compute.NewExtent(1), func(compute.Item) error {
			total++
			return nil
		})
	}))
	assert.Equal(t, 1, total)
	assert.False(t, compute.SequentialConfig().Enabled)
}
