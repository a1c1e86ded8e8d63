// Package autoplay drives an inference agent against a live board: reveal
// a cell, ask the board for its neighboring mine count, feed the pair back
// to the agent, repeat.
package autoplay

import (
	"log/slog"

	"github.com/sweeperd/minesweeper-agent/internal/mines"
	"github.com/sweeperd/minesweeper-agent/internal/solver"
)

var Log *slog.Logger = slog.Default()

type Move struct {
	Cell  solver.Cell `json:"cell"`
	Safe  bool        `json:"safe"`  /* known safe, not a guess */
	Count int         `json:"count"` /* -1 when the move exploded */
}

type Result struct {
	Won         bool   `json:"won"`
	Dead        bool   `json:"dead"`
	Moves       []Move `json:"moves"`
	SafeMoves   int    `json:"safe_moves"`
	RandomMoves int    `json:"random_moves"`
	MinesFound  int    `json:"mines_found"`
}

/*
Step plays one move: a known-safe cell when the agent has one, otherwise
a random unexplored non-mine cell. Returns ok = false, without touching
the board, when the game is over or no move is available.
*/
func Step(game *mines.GameState, agent *solver.Agent) (Move, bool) {
	if game.Over() {
		return Move{}, false
	}

	cell, safe := agent.SafeMove()
	if !safe {
		var ok bool
		cell, ok = agent.RandomMove()
		if !ok {
			return Move{}, false
		}
	}

	move := Move{Cell: cell, Safe: safe}
	move.Count = game.OpenCell(cell.X, cell.Y)
	if move.Count >= 0 {
		agent.AddKnowledge(cell, move.Count)
	}

	Log.Debug("move played",
		slog.Any("cell", cell),
		slog.Bool("safe", safe),
		slog.Int("count", move.Count),
	)

	return move, true
}

// FlagMines marks every mine the agent has deduced on the player grid.
func FlagMines(game *mines.GameState, agent *solver.Agent) int {
	flagged := 0
	for cell := range agent.Mines() {
		if game.PointInBounds(cell.X, cell.Y) {
			game.FlagCell(cell.X, cell.Y)
			flagged++
		}
	}
	return flagged
}

// Play runs a game to completion: won, dead, or out of moves.
func Play(game *mines.GameState, agent *solver.Agent) *Result {
	res := &Result{}
	for {
		move, ok := Step(game, agent)
		if !ok {
			break
		}
		res.Moves = append(res.Moves, move)
		if move.Safe {
			res.SafeMoves++
		} else {
			res.RandomMoves++
		}
	}

	res.MinesFound = FlagMines(game, agent)
	res.Won = game.Won
	res.Dead = game.Dead
	if game.Over() {
		game.RevealMines()
	}
	return res
}
