package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	c1 = Cell{X: 0, Y: 0}
	c2 = Cell{X: 1, Y: 0}
	c3 = Cell{X: 2, Y: 0}
	c4 = Cell{X: 3, Y: 0}
)

func TestSentenceKnownMines(t *testing.T) {
	tests := []struct {
		name  string
		cells CellSet
		count int
		want  CellSet
	}{
		{
			name:  "all mines",
			cells: NewCellSet(c1, c2),
			count: 2,
			want:  NewCellSet(c1, c2),
		},
		{
			name:  "undecided",
			cells: NewCellSet(c1, c2),
			count: 1,
			want:  nil,
		},
		{
			name:  "zero count",
			cells: NewCellSet(c1, c2),
			count: 0,
			want:  nil,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := NewSentence(test.cells, test.count)
			if test.want == nil {
				assert.Nil(t, s.KnownMines())
			} else {
				assert.True(t, test.want.Equal(s.KnownMines()))
			}
		})
	}
}

func TestSentenceKnownSafes(t *testing.T) {
	s := NewSentence(NewCellSet(c1, c2), 0)
	assert.True(t, NewCellSet(c1, c2).Equal(s.KnownSafes()))

	s = NewSentence(NewCellSet(c1, c2), 1)
	assert.Nil(t, s.KnownSafes())

	s = NewSentence(NewCellSet(), 0)
	assert.Nil(t, s.KnownSafes(), "empty sentence decides nothing")
}

func TestSentenceMarkMine(t *testing.T) {
	s := NewSentence(NewCellSet(c1, c2, c3), 2)

	s.MarkMine(c1)
	assert.Equal(t, 1, s.Count())
	assert.False(t, s.Cells().Has(c1))

	// not a member: no-op
	s.MarkMine(c4)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 2, len(s.Cells()))
}

func TestSentenceMarkSafe(t *testing.T) {
	s := NewSentence(NewCellSet(c1, c2, c3), 1)

	s.MarkSafe(c2)
	assert.Equal(t, 1, s.Count())
	assert.False(t, s.Cells().Has(c2))

	s.MarkSafe(c4)
	assert.Equal(t, 2, len(s.Cells()))
}

func TestSentenceCountInvariant(t *testing.T) {
	assert.Panics(t, func() {
		NewSentence(NewCellSet(c1, c2), 3)
	})
	assert.Panics(t, func() {
		NewSentence(NewCellSet(c1), -1)
	})
	assert.Panics(t, func() {
		s := NewSentence(NewCellSet(c1), 0)
		s.MarkMine(c1)
	})
}

func TestSentenceEqual(t *testing.T) {
	a := NewSentence(NewCellSet(c1, c2), 1)
	b := NewSentence(NewCellSet(c2, c1), 1)
	c := NewSentence(NewCellSet(c1, c2), 2)
	d := NewSentence(NewCellSet(c1, c3), 1)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}
