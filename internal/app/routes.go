package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sweeperd/minesweeper-agent/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)
	game := handlers.NewGame(a.logger, a.db, a.ws, createRand())

	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
	a.router.HandleFunc("GET /status", auth.Status)

	a.router.HandleFunc("POST /game", game.New)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/step", game.Step)
	a.router.HandleFunc("POST /game/{id}/solve", game.Solve)
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)

	a.router.HandleFunc("GET /highscores", game.Highscores)

	a.router.Handle("GET /metrics", promhttp.Handler())
}
