package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellStatus int8

const (
	Unknown       CellStatus = -2
	Flagged       CellStatus = -1
	ExplodedMine  CellStatus = 65
	UnflaggedMine CellStatus = 67
	/*
	 * 0 to 8 mean the square is open and carry its surrounding mine
	 * count. 65 and 67 only appear once the game is over.
	 */
)

func (s CellStatus) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Flagged:
		return "*"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is the player-visible view of the board.
type Grid []CellStatus

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
