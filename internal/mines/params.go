package mines

import "fmt"

type GameParams struct {
	Width     int `json:"width" schema:"width,required"`
	Height    int `json:"height" schema:"height,required"`
	MineCount int `json:"mine_count" schema:"mine_count,required"`
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func (p GameParams) Validate() error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", p.Width, p.Height)
	}
	if p.MineCount < 0 || p.MineCount >= p.Width*p.Height {
		return fmt.Errorf(
			"mine count must be within [0, %d), got %d",
			p.Width*p.Height, p.MineCount,
		)
	}
	return nil
}
