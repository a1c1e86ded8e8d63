package solver

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestAgent(w, h int) *Agent {
	return NewAgent(w, h, rand.New(rand.NewPCG(1, 2)))
}

func (a *Agent) checkInvariants(t *testing.T) {
	t.Helper()
	for c := range a.safes {
		assert.False(t, a.mines.Has(c), "cell %v both safe and mine", c)
	}
	for _, s := range a.knowledge {
		assert.GreaterOrEqual(t, s.count, 0)
		assert.LessOrEqual(t, s.count, len(s.cells))
		for c := range s.cells {
			assert.False(t, a.safes.Has(c), "known safe %v left in sentence", c)
			assert.False(t, a.mines.Has(c), "known mine %v left in sentence", c)
		}
	}
}

func TestMarkSafeIdempotent(t *testing.T) {
	a := newTestAgent(4, 4)
	a.knowledge = append(a.knowledge, NewSentence(NewCellSet(c1, c2, c3), 1))

	a.MarkSafe(c1)
	a.MarkSafe(c1)

	assert.Equal(t, 1, len(a.safes))
	assert.Equal(t, 2, len(a.knowledge[0].cells))
	assert.Equal(t, 1, a.knowledge[0].count)
	a.checkInvariants(t)
}

func TestMarkMineIdempotent(t *testing.T) {
	a := newTestAgent(4, 4)
	a.knowledge = append(a.knowledge, NewSentence(NewCellSet(c1, c2, c3), 1))

	a.MarkMine(c1)
	a.MarkMine(c1)

	assert.Equal(t, 1, len(a.mines))
	assert.Equal(t, 2, len(a.knowledge[0].cells))
	assert.Equal(t, 0, a.knowledge[0].count)
	a.checkInvariants(t)
}

func TestSubsetElimination(t *testing.T) {
	a := newTestAgent(8, 8)
	a.knowledge = append(a.knowledge,
		NewSentence(NewCellSet(c1, c2, c3), 1),
		NewSentence(NewCellSet(c1, c2, c3, c4), 2),
	)

	a.inferSubsets()
	a.saturate()

	// {c1,c2,c3} = 1 inside {c1,c2,c3,c4} = 2 leaves {c4} = 1.
	assert.True(t, a.mines.Has(c4), "c4 must be deduced a mine")
	a.checkInvariants(t)
}

func TestZeroCountPropagation(t *testing.T) {
	a := newTestAgent(8, 8)
	a.knowledge = append(a.knowledge, NewSentence(NewCellSet(c1, c2), 0))

	a.saturate()

	assert.True(t, a.safes.Has(c1))
	assert.True(t, a.safes.Has(c2))
	a.checkInvariants(t)
}

func TestFullCountPropagation(t *testing.T) {
	a := newTestAgent(8, 8)
	a.knowledge = append(a.knowledge, NewSentence(NewCellSet(c1, c2), 2))

	a.saturate()

	assert.True(t, a.mines.Has(c1))
	assert.True(t, a.mines.Has(c2))
	a.checkInvariants(t)
}

func TestAddKnowledgeCornerZero(t *testing.T) {
	a := newTestAgent(4, 4)

	a.AddKnowledge(Cell{X: 0, Y: 0}, 0)

	// A zero clue in the corner proves its 3 neighbors safe.
	neighbors := []Cell{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	for _, n := range neighbors {
		assert.True(t, a.safes.Has(n), "%v must be safe", n)
	}

	seen := make(CellSet)
	for range neighbors {
		move, ok := a.SafeMove()
		assert.True(t, ok, "a safe move must be known")
		assert.False(t, seen.Has(move), "safe move %v repeated", move)
		assert.False(t, a.movesMade.Has(move))
		seen.Add(move)
		a.AddKnowledge(move, 0) /* the board has no mines at all */
	}
	a.checkInvariants(t)
}

func TestAddKnowledgeBoundsNeighbors(t *testing.T) {
	a := newTestAgent(2, 2)

	a.AddKnowledge(Cell{X: 0, Y: 0}, 3)

	// All three in-bounds neighbors are mines.
	for _, c := range []Cell{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}} {
		assert.True(t, a.mines.Has(c))
	}
	a.checkInvariants(t)
}

func TestAddKnowledgePurgesKnownCells(t *testing.T) {
	a := newTestAgent(3, 1)
	mine := Cell{X: 2, Y: 0}
	a.MarkMine(mine)

	// The new sentence must not contain the known mine, and its count
	// must account for it.
	a.AddKnowledge(Cell{X: 1, Y: 0}, 1)

	assert.True(t, a.safes.Has(Cell{X: 0, Y: 0}),
		"with the only mine already known, the other neighbor is safe")
	a.checkInvariants(t)
}

func TestSafeMoveNoneKnown(t *testing.T) {
	a := newTestAgent(4, 4)
	_, ok := a.SafeMove()
	assert.False(t, ok)

	// A played cell is safe but not a move anymore.
	a.AddKnowledge(Cell{X: 0, Y: 0}, 2)
	_, ok = a.SafeMove()
	assert.False(t, ok)
}

func TestRandomMove(t *testing.T) {
	a := newTestAgent(2, 2)

	for range 3 {
		move, ok := a.RandomMove()
		assert.True(t, ok)
		assert.False(t, a.movesMade.Has(move))
		assert.False(t, a.mines.Has(move))
		a.movesMade.Add(move)
	}

	// the one remaining cell is a known mine: no move left
	last, ok := a.RandomMove()
	assert.True(t, ok)
	a.MarkMine(last)
	_, ok = a.RandomMove()
	assert.False(t, ok, "board exhausted")
}

func TestAgentEncodingRoundTrip(t *testing.T) {
	a := newTestAgent(4, 4)
	a.AddKnowledge(Cell{X: 0, Y: 0}, 2)
	a.AddKnowledge(Cell{X: 3, Y: 3}, 0)

	buf, err := a.Bytes()
	assert.NoError(t, err)

	b, err := DecodeAgent(buf, rand.New(rand.NewPCG(3, 4)))
	assert.NoError(t, err)

	assert.Equal(t, a.width, b.width)
	assert.Equal(t, a.height, b.height)
	assert.True(t, a.movesMade.Equal(b.movesMade))
	assert.True(t, a.safes.Equal(b.safes))
	assert.True(t, a.mines.Equal(b.mines))
	assert.Equal(t, len(a.knowledge), len(b.knowledge))
	for _, s := range a.knowledge {
		assert.True(t, contains(b.knowledge, s))
	}
}
