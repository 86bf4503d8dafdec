// Package ndrange provides the rank-generic coordinate types and iteration
// space descriptors used by the dispatch engine.
package ndrange

import (
	"fmt"
	"strings"
)

// MaxRank is the highest supported number of dimensions.
const MaxRank = 3

// Coordinate is a fixed-rank vector of signed integers.
// The zero value has rank 0 and is not usable; build one with NewCoordinate.
type Coordinate struct {
	rank int
	v    [MaxRank]int
}

// Extent is the size of an iteration space or buffer along each dimension.
type Extent Coordinate

// Index is a position along each dimension.
type Index Coordinate

// Coord is satisfied by every coordinate flavor, so the elementwise
// operations below keep the type of their operands.
type Coord interface {
	Coordinate | Extent | Index
}

// NewCoordinate creates a coordinate from 1 to 3 components.
// Panics if the number of components is out of range.
func NewCoordinate(vals ...int) Coordinate {
	checkRank("coordinate", len(vals))
	var c Coordinate
	c.rank = len(vals)
	copy(c.v[:], vals)
	return c
}

// ZeroCoordinate returns the all-zero coordinate of the given rank.
func ZeroCoordinate(rank int) Coordinate {
	checkRank("coordinate", rank)
	return Coordinate{rank: rank}
}

// NewExtent creates an extent, e.g. NewExtent(1024) or NewExtent(64, 64).
func NewExtent(dims ...int) Extent {
	return Extent(NewCoordinate(dims...))
}

// NewIndex creates an index, e.g. NewIndex(3, 1).
func NewIndex(vals ...int) Index {
	return Index(NewCoordinate(vals...))
}

// ZeroIndex returns the origin of a rank-dimensional space.
func ZeroIndex(rank int) Index {
	return Index(ZeroCoordinate(rank))
}

func checkRank(op string, rank int) {
	if rank < 1 || rank > MaxRank {
		panic(fmt.Sprintf("%s: rank %d out of range [1, %d]", op, rank, MaxRank))
	}
}

// Rank returns the number of dimensions.
func (c Coordinate) Rank() int { return c.rank }

// Get returns the component along dim.
func (c Coordinate) Get(dim int) int {
	if dim < 0 || dim >= c.rank {
		panic(fmt.Sprintf("coordinate: dimension %d out of range for rank %d", dim, c.rank))
	}
	return c.v[dim]
}

// With returns a copy of c with the component along dim replaced.
func (c Coordinate) With(dim, val int) Coordinate {
	_ = c.Get(dim)
	c.v[dim] = val
	return c
}

// Dims returns the components as a new slice.
func (c Coordinate) Dims() []int {
	return append([]int(nil), c.v[:c.rank]...)
}

// Equal reports whether both coordinates have the same rank and components.
func (c Coordinate) Equal(other Coordinate) bool {
	return c == other
}

func (c Coordinate) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i := 0; i < c.rank; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", c.v[i])
	}
	sb.WriteByte('}')
	return sb.String()
}

// Add returns the elementwise sum a + b.
func Add[C Coord](a, b C) C {
	return zipWith("add", a, b, func(x, y int) int { return x + y })
}

// Sub returns the elementwise difference a - b.
func Sub[C Coord](a, b C) C {
	return zipWith("sub", a, b, func(x, y int) int { return x - y })
}

// Mul returns the elementwise product a * b.
func Mul[C Coord](a, b C) C {
	return zipWith("mul", a, b, func(x, y int) int { return x * y })
}

// CeilDiv returns the elementwise division of a by b rounded up:
// (a[i] + b[i] - 1) / b[i]. Every component of b must be positive.
func CeilDiv[C Coord](a, b C) C {
	return zipWith("ceildiv", a, b, func(x, y int) int {
		if y <= 0 {
			panic(fmt.Sprintf("ceildiv: non-positive divisor %d", y))
		}
		return (x + y - 1) / y
	})
}

func zipWith[C Coord](op string, a, b C, f func(x, y int) int) C {
	ca, cb := Coordinate(a), Coordinate(b)
	if ca.rank != cb.rank {
		panic(fmt.Sprintf("%s: rank mismatch %d vs %d", op, ca.rank, cb.rank))
	}
	checkRank(op, ca.rank)
	out := Coordinate{rank: ca.rank}
	for i := 0; i < ca.rank; i++ {
		out.v[i] = f(ca.v[i], cb.v[i])
	}
	return C(out)
}
