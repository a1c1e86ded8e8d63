package autoplay

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sweeperd/minesweeper-agent/internal/mines"
	"github.com/sweeperd/minesweeper-agent/internal/solver"
)

func TestPlayMinelessBoard(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	params := mines.GameParams{Width: 5, Height: 5, MineCount: 0}
	game, err := mines.NewGame(params, rnd)
	assert.NoError(t, err)
	agent := solver.NewAgent(params.Width, params.Height, rnd)

	result := Play(game, agent)

	assert.True(t, result.Won)
	assert.False(t, result.Dead)
	assert.Equal(t, 25, len(result.Moves))
	assert.Equal(t, 1, result.RandomMoves, "only the opening move is a guess")
	assert.Equal(t, 24, result.SafeMoves)
}

func TestPlayNeverRepeatsAndNeverOpensKnownMines(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(7, 11))
	params := mines.GameParams{Width: 8, Height: 8, MineCount: 10}

	for range 25 {
		game, err := mines.NewGame(params, rnd)
		assert.NoError(t, err)
		agent := solver.NewAgent(params.Width, params.Height, rnd)

		seen := make(solver.CellSet)
		for {
			known := agent.Mines()
			move, ok := Step(game, agent)
			if !ok {
				break
			}
			assert.False(t, seen.Has(move.Cell), "move %v repeated", move.Cell)
			assert.False(t, known.Has(move.Cell), "opened a known mine %v", move.Cell)
			seen.Add(move.Cell)
		}

		assert.True(t, game.Won || game.Dead)
	}
}

/*
A lone center mine is fully decidable: every border clue is a sentence
over cells around the center, and subset elimination pins the mine
without a single guess beyond the first.
*/
func TestCenterMineIsDeduced(t *testing.T) {
	params := mines.GameParams{Width: 3, Height: 3, MineCount: 1}
	grid := make([]bool, 9)
	grid[4] = true
	playerGrid := make(mines.Grid, 9)
	for i := range playerGrid {
		playerGrid[i] = mines.Unknown
	}
	game := &mines.GameState{GameParams: params, Grid: grid, PlayerGrid: playerGrid}

	rnd := rand.New(rand.NewPCG(1, 2))
	agent := solver.NewAgent(3, 3, rnd)

	// Reveal the whole border by hand; no guessing involved.
	for y := range 3 {
		for x := range 3 {
			if x == 1 && y == 1 {
				continue
			}
			count := game.OpenCell(x, y)
			assert.GreaterOrEqual(t, count, 0)
			agent.AddKnowledge(solver.Cell{X: x, Y: y}, count)
		}
	}

	assert.True(t, game.Won)
	assert.True(t, agent.Mines().Has(solver.Cell{X: 1, Y: 1}),
		"center mine must be deduced")

	_, ok := agent.SafeMove()
	assert.False(t, ok, "no safe cell left")
	_, ok = agent.RandomMove()
	assert.False(t, ok, "every cell is played or a known mine")
}

func TestStepStopsOnFinishedGame(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	params := mines.GameParams{Width: 2, Height: 1, MineCount: 1}
	grid := []bool{false, true}
	game := &mines.GameState{
		GameParams: params,
		Grid:       grid,
		PlayerGrid: mines.Grid{mines.Unknown, mines.Unknown},
	}
	agent := solver.NewAgent(2, 1, rnd)

	for {
		if _, ok := Step(game, agent); !ok {
			break
		}
	}
	assert.True(t, game.Over())

	_, ok := Step(game, agent)
	assert.False(t, ok)
}
