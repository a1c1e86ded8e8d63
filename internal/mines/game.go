package mines

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
)

type GameState struct {
	Dead, Won  bool
	Grid       []bool /* real mine points */
	PlayerGrid Grid   /* player knowledge */
	GameParams
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var game GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewGame places MineCount mines uniformly at random. No solvability or
// first-click guarantee: the agent is expected to cope with guessing.
func NewGame(params GameParams, r *rand.Rand) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	grid := make([]bool, params.Width*params.Height)
	placed := 0
	for placed < params.MineCount {
		i := r.IntN(len(grid))
		if !grid[i] {
			grid[i] = true
			placed++
		}
	}

	playerGrid := make(Grid, len(grid))
	for i := range playerGrid {
		playerGrid[i] = Unknown
	}

	return &GameState{
		GameParams: params,
		Grid:       grid,
		PlayerGrid: playerGrid,
	}, nil
}

func (s *GameState) MineAt(x, y int) bool {
	return s.Grid[y*s.Width+x]
}

// NearbyMines counts the mines among the up-to-8 neighbors of a cell,
// the cell itself excluded.
func (s *GameState) NearbyMines(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if s.PointInBounds(x+dx, y+dy) && s.MineAt(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

/*
OpenCell reveals a single square. Returns the neighboring mine count,
or -1 when the square held a mine and the game is lost. There is no
flood fill: the caller reveals exactly the cells it chooses, one per
call, and learns one count per call.
*/
func (s *GameState) OpenCell(x, y int) int {
	i := y*s.Width + x
	if s.Grid[i] {
		s.Dead = true
		s.PlayerGrid[i] = ExplodedMine
		return -1
	}

	n := s.NearbyMines(x, y)
	s.PlayerGrid[i] = CellStatus(n)

	/*
	 * The game is won once exactly as many squares stay covered as
	 * there are mines.
	 */
	var nmines, ncovered int
	for j := range s.Grid {
		if s.PlayerGrid[j] < 0 {
			ncovered++
		}
		if s.Grid[j] {
			nmines++
		}
	}
	if ncovered == nmines {
		s.Won = true
	}

	return n
}

func (s *GameState) FlagCell(x, y int) {
	i := y*s.Width + x
	if s.PlayerGrid[i] == Unknown {
		s.PlayerGrid[i] = Flagged
	} else if s.PlayerGrid[i] == Flagged {
		s.PlayerGrid[i] = Unknown
	}
}

func (s *GameState) Over() bool {
	return s.Dead || s.Won
}

// RevealMines shows every unflagged mine; called when the game ends.
func (s *GameState) RevealMines() {
	for i := range s.Grid {
		if s.Grid[i] && s.PlayerGrid[i] == Unknown {
			s.PlayerGrid[i] = UnflaggedMine
		}
	}
}

func (s *GameState) Forfeit() {
	if !s.Over() {
		s.Dead = true
	}
	s.RevealMines()
}
