package solver

import (
	"fmt"
	"math/rand/v2"
)

// Cell identifies a board square. Copied freely, compared structurally.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.X, c.Y)
}

type CellSet map[Cell]struct{}

func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

func (s CellSet) Add(c Cell) {
	s[c] = struct{}{}
}

func (s CellSet) Remove(c Cell) {
	delete(s, c)
}

func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

func (s CellSet) Clone() CellSet {
	clone := make(CellSet, len(s))
	for c := range s {
		clone[c] = struct{}{}
	}
	return clone
}

func (s CellSet) Equal(other CellSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every cell of s is in other.
func (s CellSet) SubsetOf(other CellSet) bool {
	if len(s) > len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// Diff returns the cells of s that are not in other.
func (s CellSet) Diff(other CellSet) CellSet {
	diff := make(CellSet)
	for c := range s {
		if !other.Has(c) {
			diff[c] = struct{}{}
		}
	}
	return diff
}

// Pick returns a uniformly chosen element of the set.
func (s CellSet) Pick(r *rand.Rand) (Cell, bool) {
	if len(s) == 0 {
		return Cell{}, false
	}
	n := r.IntN(len(s))
	for c := range s {
		if n == 0 {
			return c, true
		}
		n--
	}
	panic(AssertionError{"unreachable"})
}
