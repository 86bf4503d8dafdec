package ndrange

import (
	"fmt"
	"math"
)

// Rank returns the number of dimensions.
func (e Extent) Rank() int { return e.rank }

// Get returns the size along dim.
func (e Extent) Get(dim int) int { return Coordinate(e).Get(dim) }

// Dims returns the sizes as a new slice.
func (e Extent) Dims() []int { return Coordinate(e).Dims() }

// Equal reports whether both extents have the same rank and sizes.
func (e Extent) Equal(other Extent) bool { return e == other }

func (e Extent) String() string { return Coordinate(e).String() }

// Size returns the number of points in the extent.
// A zero size along any dimension gives 0.
func (e Extent) Size() int {
	n := 1
	for i := 0; i < e.rank; i++ {
		n *= e.v[i]
	}
	return n
}

// Validate checks that every size is non-negative and that the total
// number of points fits in an int.
func (e Extent) Validate() error {
	if e.rank < 1 || e.rank > MaxRank {
		return fmt.Errorf("invalid rank %d (must be in [1, %d])", e.rank, MaxRank)
	}
	n := 1
	for i := 0; i < e.rank; i++ {
		d := e.v[i]
		if d < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, d)
		}
		if d != 0 && n > math.MaxInt/d {
			return fmt.Errorf("extent %v overflows the addressable element count", e)
		}
		n *= d
	}
	return nil
}

// Contains reports whether idx lies in [0, e) along every dimension.
func (e Extent) Contains(idx Index) bool {
	if idx.rank != e.rank {
		return false
	}
	for i := 0; i < e.rank; i++ {
		if idx.v[i] < 0 || idx.v[i] >= e.v[i] {
			return false
		}
	}
	return true
}

// Strides returns the row-major strides: stride[i] is the product of all
// sizes after i, so the last dimension is contiguous.
func (e Extent) Strides() Coordinate {
	s := Coordinate{rank: e.rank}
	s.v[e.rank-1] = 1
	for i := e.rank - 2; i >= 0; i-- {
		s.v[i] = s.v[i+1] * e.v[i+1]
	}
	return s
}

// Linearize maps idx to its row-major position in e.
// Panics if ranks differ; the caller checks bounds with Contains.
func (e Extent) Linearize(idx Index) int {
	if idx.rank != e.rank {
		panic(fmt.Sprintf("linearize: rank mismatch %d vs %d", idx.rank, e.rank))
	}
	lin := 0
	for i := 0; i < e.rank; i++ {
		lin = lin*e.v[i] + idx.v[i]
	}
	return lin
}

// Delinearize is the inverse of Linearize for 0 <= lin < e.Size().
func (e Extent) Delinearize(lin int) Index {
	idx := Index{rank: e.rank}
	for i := e.rank - 1; i >= 0; i-- {
		d := e.v[i]
		idx.v[i] = lin % d
		lin /= d
	}
	return idx
}

// Rank returns the number of dimensions.
func (i Index) Rank() int { return i.rank }

// Get returns the position along dim.
func (i Index) Get(dim int) int { return Coordinate(i).Get(dim) }

// With returns a copy of i with the position along dim replaced.
func (i Index) With(dim, val int) Index { return Index(Coordinate(i).With(dim, val)) }

// Dims returns the positions as a new slice.
func (i Index) Dims() []int { return Coordinate(i).Dims() }

// Equal reports whether both indices have the same rank and positions.
func (i Index) Equal(other Index) bool { return i == other }

func (i Index) String() string { return Coordinate(i).String() }

// AsExtent reinterprets the position as a size; used when an index counts
// elements (e.g. a group id multiplied by a local extent).
func (i Index) AsExtent() Extent { return Extent(i) }

// AsIndex reinterprets the sizes as a position.
func (e Extent) AsIndex() Index { return Index(e) }
