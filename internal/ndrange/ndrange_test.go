package ndrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinate_Rank(t *testing.T) {
	for rank := 1; rank <= MaxRank; rank++ {
		c := ZeroCoordinate(rank)
		assert.Equal(t, rank, c.Rank())
		assert.Equal(t, make([]int, rank), c.Dims())
	}

	assert.Panics(t, func() { NewCoordinate() })
	assert.Panics(t, func() { NewCoordinate(1, 2, 3, 4) })
	assert.Panics(t, func() { ZeroIndex(0) })
}

func TestElementwiseOps(t *testing.T) {
	a := NewIndex(1, 2, 3)
	b := NewIndex(4, 5, 6)

	assert.Equal(t, NewIndex(5, 7, 9), Add(a, b))
	assert.Equal(t, NewIndex(-3, -3, -3), Sub(a, b))
	assert.Equal(t, NewIndex(4, 10, 18), Mul(a, b))

	// Commutativity.
	assert.Equal(t, Add(a, b), Add(b, a))
	assert.Equal(t, Mul(a, b), Mul(b, a))
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		name string
		a, b Extent
		want Extent
	}{
		{"exact", NewExtent(8), NewExtent(2), NewExtent(4)},
		{"round up", NewExtent(9), NewExtent(2), NewExtent(5)},
		{"2d", NewExtent(4, 5), NewExtent(2, 2), NewExtent(2, 3)},
		{"3d", NewExtent(1, 7, 64), NewExtent(1, 3, 16), NewExtent(1, 3, 4)},
		{"zero dividend", NewExtent(0), NewExtent(4), NewExtent(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CeilDiv(tt.a, tt.b))
		})
	}
}

func TestCeilDiv_MatchesRealCeil(t *testing.T) {
	for a := 1; a <= 40; a++ {
		for b := 1; b <= 9; b++ {
			got := CeilDiv(NewExtent(a), NewExtent(b)).Get(0)
			want := a / b
			if a%b != 0 {
				want++
			}
			require.Equal(t, want, got, "ceil(%d/%d)", a, b)
		}
	}
}

func TestElementwiseOps_RankMismatchPanics(t *testing.T) {
	a := NewExtent(1, 2)
	b := NewExtent(1, 2, 3)

	assert.Panics(t, func() { Add(a, b) })
	assert.Panics(t, func() { Mul(a, b) })
	assert.Panics(t, func() { CeilDiv(a, b) })
	assert.Panics(t, func() { CeilDiv(NewExtent(4), NewExtent(0)) })
}

func TestExtent_SizeAndValidate(t *testing.T) {
	assert.Equal(t, 24, NewExtent(2, 3, 4).Size())
	assert.Equal(t, 0, NewExtent(5, 0).Size())
	require.NoError(t, NewExtent(5, 0).Validate())

	assert.Error(t, NewExtent(3, -1).Validate())
	assert.Error(t, Extent{}.Validate())
	assert.Error(t, NewExtent(1<<40, 1<<40).Validate())
}

func TestExtent_Linearize(t *testing.T) {
	e := NewExtent(2, 3, 4)
	assert.Equal(t, NewCoordinate(12, 4, 1), e.Strides())

	seen := make(map[int]bool)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				idx := NewIndex(i, j, k)
				lin := e.Linearize(idx)
				assert.Equal(t, idx, e.Delinearize(lin))
				seen[lin] = true
			}
		}
	}
	assert.Len(t, seen, e.Size())
}

func TestExtent_Contains(t *testing.T) {
	e := NewExtent(4, 4)
	assert.True(t, e.Contains(NewIndex(0, 3)))
	assert.False(t, e.Contains(NewIndex(4, 0)))
	assert.False(t, e.Contains(NewIndex(-1, 0)))
	assert.False(t, e.Contains(NewIndex(1)))
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "{1,-2,3}", NewIndex(1, -2, 3).String())
	assert.Equal(t, "{7}", NewExtent(7).String())
}

func TestHierarchicalSpace(t *testing.T) {
	s := NewHierarchicalSpace(NewExtent(4, 4), NewExtent(2, 2))
	assert.Equal(t, NewExtent(2, 2), s.GroupCount())
	assert.Equal(t, ZeroIndex(2), s.Offset())
	assert.Equal(t, 2, s.Rank())

	s = NewHierarchicalSpace(NewExtent(10), NewExtent(4), NewIndex(3))
	assert.Equal(t, NewExtent(3), s.GroupCount())
	assert.True(t, s.Contains(NewIndex(3)))
	assert.True(t, s.Contains(NewIndex(12)))
	assert.False(t, s.Contains(NewIndex(13)))
	assert.False(t, s.Contains(NewIndex(2)))
}

func TestHierarchicalSpace_Invalid(t *testing.T) {
	assert.Panics(t, func() { NewHierarchicalSpace(NewExtent(4, 4), NewExtent(2)) })
	assert.Panics(t, func() { NewHierarchicalSpace(NewExtent(4), NewExtent(2), NewIndex(0, 0)) })
	assert.Panics(t, func() { NewHierarchicalSpace(NewExtent(4), NewExtent(0)) })
	assert.Panics(t, func() { NewHierarchicalSpace(NewExtent(-4), NewExtent(1)) })
}

func TestItem(t *testing.T) {
	it := NewItem(NewExtent(4, 5), NewIndex(12, 3), NewIndex(10, 0))
	assert.Equal(t, NewIndex(12, 3), it.GlobalID())
	assert.Equal(t, 12, it.Get(0))
	assert.Equal(t, NewExtent(4, 5), it.GlobalRange())
	assert.Equal(t, NewIndex(10, 0), it.Offset())
	assert.Equal(t, 2*5+3, it.LinearID())
}

func TestGroupRefAndWorkItem(t *testing.T) {
	s := NewHierarchicalSpace(NewExtent(4, 4), NewExtent(2, 2), NewIndex(1, 1))
	g := NewGroupRef(s, NewIndex(1, 0))

	assert.Equal(t, NewIndex(1, 0), g.GroupID())
	assert.Equal(t, NewExtent(2, 2), g.LocalRange())
	assert.Equal(t, NewExtent(4, 4), g.GlobalRange())
	assert.Equal(t, NewExtent(2, 2), g.GroupRange())
	assert.Equal(t, NewIndex(3, 1), g.Origin())

	w := NewWorkItem(NewIndex(4, 2), NewIndex(1, 1), s)
	assert.Equal(t, NewIndex(1, 0), w.GroupID())
	assert.Equal(t, 3, w.LinearLocalID())
	assert.Equal(t, 4, w.GlobalIDDim(0))
	assert.Equal(t, 1, w.LocalIDDim(1))
	assert.Equal(t, s, w.Space())
}
