package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sweeperd/minesweeper-agent/internal/autoplay"
)

/*
ConnectWS exposes a session over a text-command socket:

	s	step: the agent plays one move
	a	autoplay: the agent plays out the game, one frame per move
	g	get: resend the current session
	r	resign: forfeit and reveal the board

Every command is answered with one or more session DTO frames.
*/
func (g Game) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, game, agent := g.loadSession(w, r)
	if session == nil {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", "error", err)
		return
	}
	defer c.Close()

	send := func(lastMove *autoplay.Move) error {
		return c.WriteJSON(NewGameSessionDTO(session, game, agent, lastMove))
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("abnormal ws break", "error", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		var sendErr error
		switch cmd := strings.TrimSpace(string(message)); cmd {
		case "g":
			sendErr = send(nil)
		case "s":
			var lastMove *autoplay.Move
			if move, ok := autoplay.Step(game, agent); ok {
				lastMove = &move
			}
			if game.Over() {
				autoplay.FlagMines(game, agent)
				game.RevealMines()
			}
			sendErr = send(lastMove)
		case "a":
			for {
				move, ok := autoplay.Step(game, agent)
				if !ok {
					break
				}
				if game.Over() {
					autoplay.FlagMines(game, agent)
					game.RevealMines()
				}
				if sendErr = send(&move); sendErr != nil {
					break
				}
				time.Sleep(50 * time.Millisecond) /* watchable pace */
			}
		case "r":
			game.Forfeit()
			sendErr = send(nil)
		default:
			sendErr = c.WriteJSON(wrapError(fmt.Errorf("unknown command %q", cmd)))
		}
		if sendErr != nil {
			g.logger.Error("unable to write json", "error", sendErr)
			break
		}

		if err := g.saveSession(r, session, game, agent); err != nil {
			g.logger.Error("unable to update session in db", "error", err)
			break
		}
	}
}
