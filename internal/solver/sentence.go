package solver

import "fmt"

/*
A Sentence is a logical statement about the board: of the cells in the
set, exactly `count` are mines. Sentences shrink in place as individual
cells are resolved; a sentence with no cells left carries no information.

Invariant: 0 <= count <= len(cells), always.
*/
type Sentence struct {
	cells CellSet
	count int
}

func NewSentence(cells CellSet, count int) *Sentence {
	if count < 0 || count > len(cells) {
		panic(AssertionError{fmt.Sprintf(
			"sentence %v = %d violates count bound", cells, count,
		)})
	}
	return &Sentence{cells: cells.Clone(), count: count}
}

func (s *Sentence) String() string {
	return fmt.Sprintf("%v = %d", s.cells, s.count)
}

func (s *Sentence) Cells() CellSet {
	return s.cells
}

func (s *Sentence) Count() int {
	return s.count
}

func (s *Sentence) Empty() bool {
	return len(s.cells) == 0
}

func (s *Sentence) Equal(other *Sentence) bool {
	return s.count == other.count && s.cells.Equal(other.cells)
}

// KnownMines returns every cell of the sentence when all of them must be
// mines, or nil when the sentence decides nothing yet.
func (s *Sentence) KnownMines() CellSet {
	if s.count > 0 && s.count == len(s.cells) {
		return s.cells
	}
	return nil
}

// KnownSafes returns every cell of the sentence when none of them can be
// a mine, or nil when the sentence decides nothing yet.
func (s *Sentence) KnownSafes() CellSet {
	if s.count == 0 && len(s.cells) > 0 {
		return s.cells
	}
	return nil
}

// MarkMine resolves cell as a mine: it leaves the set and takes one of
// the counted mines with it. No-op when the cell is not in the sentence.
func (s *Sentence) MarkMine(cell Cell) {
	if !s.cells.Has(cell) {
		return
	}
	if s.count == 0 {
		panic(AssertionError{fmt.Sprintf(
			"cell %v marked as mine in zero-count sentence", cell,
		)})
	}
	s.cells.Remove(cell)
	s.count--
}

// MarkSafe resolves cell as safe: it leaves the set, count unchanged.
func (s *Sentence) MarkSafe(cell Cell) {
	s.cells.Remove(cell)
}
