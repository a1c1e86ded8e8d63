package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

/*
A game session stores both collaborators of one auto-played game: the
board (State) and the agent's knowledge base (Agent), each gob-encoded,
so a game can be stepped over many requests.
*/
type GameSession struct {
	GameSessionID int64
	PublicID      uuid.UUID
	PlayerID      *int64
	Width         int32
	Height        int32
	MineCount     int32
	Dead          bool
	Won           bool
	Moves         int32
	State         []byte
	Agent         []byte
	StartedAt     time.Time
	EndedAt       *time.Time
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type CreateSessionParams struct {
	PlayerID  *int64
	Width     int32
	Height    int32
	MineCount int32
	State     []byte
	Agent     []byte
}

func (q Queries) CreateSession(
	ctx context.Context, params CreateSessionParams,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			public_id, player_id, width, height, mine_count, state, agent
		)
		VALUES (
			@public_id, @player_id, @width, @height, @mine_count, @state, @agent
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"public_id":  uuid.New(),
			"player_id":  params.PlayerID,
			"width":      params.Width,
			"height":     params.Height,
			"mine_count": params.MineCount,
			"state":      params.State,
			"agent":      params.Agent,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q Queries) GetSession(ctx context.Context, publicID uuid.UUID) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE public_id = $1",
		publicID,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateSessionParams struct {
	GameSessionID int64
	Dead          bool
	Won           bool
	Moves         int32
	State         []byte
	Agent         []byte
	EndedAt       *time.Time
}

func (q Queries) UpdateSession(ctx context.Context, params UpdateSessionParams) error {
	_, err := q.db.Exec(
		ctx,
		`UPDATE game_session SET
			dead = @dead,
			won = @won,
			moves = @moves,
			state = @state,
			agent = @agent,
			ended_at = @ended_at,
			updated_at = now()
		WHERE game_session_id = @game_session_id`,
		pgx.NamedArgs{
			"game_session_id": params.GameSessionID,
			"dead":            params.Dead,
			"won":             params.Won,
			"moves":           params.Moves,
			"state":           params.State,
			"agent":           params.Agent,
			"ended_at":        params.EndedAt,
		},
	)
	return err
}
