package handlers

import (
	"net/url"
	"time"

	"github.com/gorilla/schema"

	"github.com/sweeperd/minesweeper-agent/internal/autoplay"
	"github.com/sweeperd/minesweeper-agent/internal/mines"
	"github.com/sweeperd/minesweeper-agent/internal/repository"
	"github.com/sweeperd/minesweeper-agent/internal/solver"
)

func ParseGameParams(query url.Values) (mines.GameParams, error) {
	var params mines.GameParams
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&params, query); err != nil {
		return params, err
	}
	return params, params.Validate()
}

type GameSessionDTO struct {
	GameSessionId string         `json:"game_session_id"`
	Grid          mines.Grid     `json:"grid"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	MineCount     int            `json:"mine_count"`
	Dead          bool           `json:"dead"`
	Won           bool           `json:"won"`
	Moves         int            `json:"moves"`
	KnownSafes    int            `json:"known_safes"`
	KnownMines    int            `json:"known_mines"`
	Sentences     int            `json:"sentences"`
	LastMove      *autoplay.Move `json:"last_move,omitempty"`
	StartedAt     int64          `json:"started_at"`
	EndedAt       *int64         `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(
	session *repository.GameSession,
	game *mines.GameState,
	agent *solver.Agent,
	lastMove *autoplay.Move,
) *GameSessionDTO {
	var endedAt *int64
	if session.EndedAt != nil {
		e := session.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: session.PublicID.String(),
		Grid:          game.PlayerGrid,
		Width:         game.Width,
		Height:        game.Height,
		MineCount:     game.MineCount,
		Dead:          game.Dead,
		Won:           game.Won,
		Moves:         len(agent.MovesMade()),
		KnownSafes:    len(agent.Safes()),
		KnownMines:    len(agent.Mines()),
		Sentences:     agent.KnowledgeSize(),
		LastMove:      lastMove,
		StartedAt:     session.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}

func sessionEnd(session *repository.GameSession, game *mines.GameState) *time.Time {
	if !game.Over() {
		return session.EndedAt
	}
	if session.EndedAt != nil {
		return session.EndedAt
	}
	now := time.Now().UTC()
	return &now
}
