package solver

import (
	"log/slog"
	"math/rand/v2"
	"sync"
)

var Log *slog.Logger = slog.Default()

/*
Agent accumulates knowledge about a single game. It never looks at mine
placement: the game loop reveals a cell, asks the board how many of its
neighbors are mines and hands the pair to AddKnowledge. Everything the
agent reports back (safe moves, flagged mines) is deduced from those
pairs by subset elimination over its sentences.

All methods hold one mutex; an agent may be read from a goroutine other
than the one playing it, and AddKnowledge is a multi-step read-modify-
write over shared sets.
*/
type Agent struct {
	mu sync.Mutex

	width, height int

	movesMade CellSet
	safes     CellSet
	mines     CellSet
	knowledge []*Sentence

	rnd *rand.Rand
}

func NewAgent(width, height int, rnd *rand.Rand) *Agent {
	return &Agent{
		width:     width,
		height:    height,
		movesMade: make(CellSet),
		safes:     make(CellSet),
		mines:     make(CellSet),
		rnd:       rnd,
	}
}

func (a *Agent) Width() int  { return a.width }
func (a *Agent) Height() int { return a.height }

// MarkMine records cell as a known mine and resolves it in every
// sentence. Idempotent.
func (a *Agent) MarkMine(cell Cell) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.markMine(cell)
}

// MarkSafe records cell as known safe and resolves it in every
// sentence. Idempotent.
func (a *Agent) MarkSafe(cell Cell) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.markSafe(cell)
}

func (a *Agent) markMine(cell Cell) {
	a.mines.Add(cell)
	for _, s := range a.knowledge {
		s.MarkMine(cell)
	}
}

func (a *Agent) markSafe(cell Cell) {
	a.safes.Add(cell)
	for _, s := range a.knowledge {
		s.MarkSafe(cell)
	}
}

// AddKnowledge digests one revealed cell and its neighboring mine count.
// Called exactly once per revealed cell.
func (a *Agent) AddKnowledge(cell Cell, count int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.movesMade.Add(cell)
	a.markSafe(cell)

	/*
	 * State a new sentence over the unexplored neighbors. Cells whose
	 * status is already resolved never enter a sentence: known safes
	 * are dropped, known mines are dropped and take one count with
	 * them.
	 */
	neighbors := make(CellSet)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Cell{X: cell.X + dx, Y: cell.Y + dy}
			if n.X < 0 || n.X >= a.width || n.Y < 0 || n.Y >= a.height {
				continue
			}
			if a.movesMade.Has(n) || a.safes.Has(n) {
				continue
			}
			if a.mines.Has(n) {
				count--
				continue
			}
			neighbors.Add(n)
		}
	}
	if len(neighbors) > 0 {
		a.knowledge = append(a.knowledge, NewSentence(neighbors, count))
	}

	a.inferSubsets()
	a.saturate()
	a.compact()

	Log.Debug("knowledge added",
		slog.Any("cell", cell),
		slog.Int("count", count),
		slog.Int("sentences", len(a.knowledge)),
		slog.Int("safes", len(a.safes)),
		slog.Int("mines", len(a.mines)),
	)
}

/*
inferSubsets runs one round of subset elimination: whenever sentence A's
cells all lie inside sentence B's, the cells unique to B hold exactly
B.count - A.count mines. One round per revealed cell; repeated calls
saturate the knowledge base over the course of a game.
*/
func (a *Agent) inferSubsets() {
	var derived []*Sentence
	for _, sub := range a.knowledge {
		for _, super := range a.knowledge {
			if sub == super || sub.Equal(super) {
				continue
			}
			if !sub.cells.SubsetOf(super.cells) {
				continue
			}
			diff := super.cells.Diff(sub.cells)
			if len(diff) == 0 {
				continue
			}
			candidate := NewSentence(diff, super.count-sub.count)
			if a.known(candidate) || contains(derived, candidate) {
				continue
			}
			derived = append(derived, candidate)
		}
	}
	a.knowledge = append(a.knowledge, derived...)
}

// saturate collects every cell the current sentences fully decide and
// marks them all. Unions are taken first so marking cannot invalidate a
// sentence mid-scan.
func (a *Agent) saturate() {
	mines := make(CellSet)
	safes := make(CellSet)
	for _, s := range a.knowledge {
		for c := range s.KnownMines() {
			mines.Add(c)
		}
		for c := range s.KnownSafes() {
			safes.Add(c)
		}
	}
	for c := range mines {
		a.markMine(c)
	}
	for c := range safes {
		a.markSafe(c)
	}
}

// compact drops sentences that have run out of cells.
func (a *Agent) compact() {
	kept := a.knowledge[:0]
	for _, s := range a.knowledge {
		if !s.Empty() {
			kept = append(kept, s)
		}
	}
	a.knowledge = kept
}

func (a *Agent) known(candidate *Sentence) bool {
	return contains(a.knowledge, candidate)
}

func contains(sentences []*Sentence, candidate *Sentence) bool {
	for _, s := range sentences {
		if s.Equal(candidate) {
			return true
		}
	}
	return false
}

// SafeMove returns a cell proven safe that has not been played yet. The
// second result is false when no such cell is known.
func (a *Agent) SafeMove() (Cell, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.safes.Diff(a.movesMade).Pick(a.rnd)
}

// RandomMove returns an unplayed cell that is not a known mine. The
// second result is false when the whole board is exhausted.
func (a *Agent) RandomMove() (Cell, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	available := make(CellSet)
	for y := range a.height {
		for x := range a.width {
			c := Cell{X: x, Y: y}
			if !a.movesMade.Has(c) && !a.mines.Has(c) {
				available.Add(c)
			}
		}
	}
	return available.Pick(a.rnd)
}

func (a *Agent) Safes() CellSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.safes.Clone()
}

func (a *Agent) Mines() CellSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mines.Clone()
}

func (a *Agent) MovesMade() CellSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.movesMade.Clone()
}

func (a *Agent) KnowledgeSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.knowledge)
}
