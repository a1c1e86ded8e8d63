package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGamePlacesMines(t *testing.T) {
	tests := []struct {
		name   string
		params GameParams
	}{
		{name: "8x8(8)", params: GameParams{Width: 8, Height: 8, MineCount: 8}},
		{name: "9x9(35)", params: GameParams{Width: 9, Height: 9, MineCount: 35}},
		{name: "30x16(99)", params: GameParams{Width: 30, Height: 16, MineCount: 99}},
		{name: "1x1(0)", params: GameParams{Width: 1, Height: 1, MineCount: 0}},
	}
	r := rand.New(rand.NewPCG(1, 2))
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			game, err := NewGame(test.params, r)
			assert.NoError(t, err)

			placed := 0
			for _, mine := range game.Grid {
				if mine {
					placed++
				}
			}
			assert.Equal(t, test.params.MineCount, placed)
			assert.Equal(t, test.params.Width*test.params.Height, len(game.PlayerGrid))
			for _, s := range game.PlayerGrid {
				assert.Equal(t, Unknown, s)
			}
		})
	}
}

func TestGameParamsValidate(t *testing.T) {
	assert.Error(t, GameParams{Width: 0, Height: 8, MineCount: 1}.Validate())
	assert.Error(t, GameParams{Width: 8, Height: 8, MineCount: -1}.Validate())
	assert.Error(t, GameParams{Width: 8, Height: 8, MineCount: 64}.Validate(),
		"a full board leaves no move to make")
	assert.NoError(t, GameParams{Width: 8, Height: 8, MineCount: 63}.Validate())
}

// handGame builds a 3x3 board with mines at the given linear indexes.
func handGame(mineAt ...int) *GameState {
	params := GameParams{Width: 3, Height: 3, MineCount: len(mineAt)}
	grid := make([]bool, 9)
	for _, i := range mineAt {
		grid[i] = true
	}
	playerGrid := make(Grid, 9)
	for i := range playerGrid {
		playerGrid[i] = Unknown
	}
	return &GameState{GameParams: params, Grid: grid, PlayerGrid: playerGrid}
}

func TestNearbyMines(t *testing.T) {
	/*
	 * . * .
	 * . * .
	 * . . .
	 */
	game := handGame(1, 4)

	assert.Equal(t, 2, game.NearbyMines(0, 0))
	assert.Equal(t, 1, game.NearbyMines(1, 0), "a mine's own square is not counted")
	assert.Equal(t, 2, game.NearbyMines(2, 1))
	assert.Equal(t, 1, game.NearbyMines(0, 2))
	assert.Equal(t, 0, game.NearbyMines(2, 2))
}

func TestOpenCell(t *testing.T) {
	game := handGame(4) /* center mine */

	assert.Equal(t, 1, game.OpenCell(0, 0))
	assert.Equal(t, CellStatus(1), game.PlayerGrid[0])
	assert.False(t, game.Over())

	assert.Equal(t, -1, game.OpenCell(1, 1))
	assert.True(t, game.Dead)
	assert.Equal(t, ExplodedMine, game.PlayerGrid[4])
}

func TestOpenCellWins(t *testing.T) {
	game := handGame(4)

	for y := range 3 {
		for x := range 3 {
			if x == 1 && y == 1 {
				continue
			}
			assert.GreaterOrEqual(t, game.OpenCell(x, y), 0)
		}
	}

	assert.True(t, game.Won)
	assert.False(t, game.Dead)
}

func TestFlagCell(t *testing.T) {
	game := handGame(4)

	game.FlagCell(1, 1)
	assert.Equal(t, Flagged, game.PlayerGrid[4])
	game.FlagCell(1, 1)
	assert.Equal(t, Unknown, game.PlayerGrid[4])

	// opened squares cannot be flagged
	game.OpenCell(0, 0)
	game.FlagCell(0, 0)
	assert.Equal(t, CellStatus(1), game.PlayerGrid[0])
}

func TestRevealMines(t *testing.T) {
	game := handGame(4)
	game.Forfeit()

	assert.True(t, game.Dead)
	assert.Equal(t, UnflaggedMine, game.PlayerGrid[4])
}

func TestGameStateRoundTrip(t *testing.T) {
	game := handGame(4)
	game.OpenCell(0, 0)

	buf, err := game.Bytes()
	assert.NoError(t, err)

	decoded, err := DecodeGameState(buf)
	assert.NoError(t, err)
	assert.Equal(t, game.GameParams, decoded.GameParams)
	assert.Equal(t, game.Grid, decoded.Grid)
	assert.Equal(t, game.PlayerGrid, decoded.PlayerGrid)
}
