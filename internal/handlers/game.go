package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sweeperd/minesweeper-agent/internal/autoplay"
	"github.com/sweeperd/minesweeper-agent/internal/config"
	"github.com/sweeperd/minesweeper-agent/internal/middleware"
	"github.com/sweeperd/minesweeper-agent/internal/mines"
	"github.com/sweeperd/minesweeper-agent/internal/repository"
	"github.com/sweeperd/minesweeper-agent/internal/solver"
)

type Game struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func NewGame(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *Game {
	return &Game{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		rnd:    rnd,
	}
}

// New creates a session: a fresh board and an agent with no knowledge.
// The agent only ever plays by itself; clients watch and step it.
func (g Game) New(w http.ResponseWriter, r *http.Request) {
	params, err := ParseGameParams(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	game, err := mines.NewGame(params, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	agent := solver.NewAgent(params.Width, params.Height, g.rnd)

	gameBytes, err := game.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to encode game state", "error", err)
		return
	}
	agentBytes, err := agent.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to encode agent state", "error", err)
		return
	}

	createParams := repository.CreateSessionParams{
		Width:     int32(params.Width),
		Height:    int32(params.Height),
		MineCount: int32(params.MineCount),
		State:     gameBytes,
		Agent:     agentBytes,
	}
	if claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims); ok {
		createParams.PlayerID = &claims.PlayerId
	}

	session, err := g.repo.CreateSession(r.Context(), createParams)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game, agent, nil))
}

// loadSession pulls a session and decodes both collaborators. A nil
// session means the response is already written.
func (g Game) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *mines.GameState, *solver.Agent) {
	publicID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, nil
	}

	session, err := g.repo.GetSession(r.Context(), publicID)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, nil
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", "error", err)
		return nil, nil, nil
	}

	game, err := mines.DecodeGameState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", "error", err)
		return nil, nil, nil
	}

	agent, err := solver.DecodeAgent(session.Agent, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.agent", "error", err)
		return nil, nil, nil
	}

	return session, game, agent
}

func (g Game) saveSession(
	r *http.Request,
	session *repository.GameSession,
	game *mines.GameState,
	agent *solver.Agent,
) error {
	gameBytes, err := game.Bytes()
	if err != nil {
		return err
	}
	agentBytes, err := agent.Bytes()
	if err != nil {
		return err
	}
	session.EndedAt = sessionEnd(session, game)
	return g.repo.UpdateSession(r.Context(), repository.UpdateSessionParams{
		GameSessionID: session.GameSessionID,
		Dead:          game.Dead,
		Won:           game.Won,
		Moves:         int32(len(agent.MovesMade())),
		State:         gameBytes,
		Agent:         agentBytes,
		EndedAt:       session.EndedAt,
	})
}

func (g Game) Fetch(w http.ResponseWriter, r *http.Request) {
	session, game, agent := g.loadSession(w, r)
	if session == nil {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game, agent, nil))
}

// Step has the agent play a single move.
func (g Game) Step(w http.ResponseWriter, r *http.Request) {
	session, game, agent := g.loadSession(w, r)
	if session == nil {
		return
	}

	var lastMove *autoplay.Move
	if move, ok := autoplay.Step(game, agent); ok {
		lastMove = &move
	}
	if game.Over() {
		autoplay.FlagMines(game, agent)
		game.RevealMines()
	}

	if err := g.saveSession(r, session, game, agent); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game, agent, lastMove))
}

// Solve has the agent play the game out to the end.
func (g Game) Solve(w http.ResponseWriter, r *http.Request) {
	session, game, agent := g.loadSession(w, r)
	if session == nil {
		return
	}

	result := autoplay.Play(game, agent)

	if err := g.saveSession(r, session, game, agent); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, struct {
		*GameSessionDTO
		Result *autoplay.Result `json:"result"`
	}{
		NewGameSessionDTO(session, game, agent, nil),
		result,
	})
}

func (g Game) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, game, agent := g.loadSession(w, r)
	if session == nil {
		return
	}

	game.Forfeit()

	if err := g.saveSession(r, session, game, agent); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game, agent, nil))
}

func (g Game) Highscores(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter repository.HighscoreFilter
	if username := query.Get("username"); username != "" {
		filter.Username = &username
	}
	if query.Has("width") {
		params, err := ParseGameParams(query)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.logger, wrapError(err))
			return
		}
		filter.GameParams = &params
	}

	highscores, err := g.repo.GetHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch highscores", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, highscores)
}
