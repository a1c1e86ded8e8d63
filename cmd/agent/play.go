package main

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sweeperd/minesweeper-agent/internal/autoplay"
	"github.com/sweeperd/minesweeper-agent/internal/mines"
	"github.com/sweeperd/minesweeper-agent/internal/solver"
)

var playFlags struct {
	width  int
	height int
	mines  int
	games  int
	seed   uint64
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Auto-play a batch of games and report win statistics",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().IntVarP(&playFlags.width, "width", "W", 8, "board width")
	playCmd.Flags().IntVarP(&playFlags.height, "height", "H", 8, "board height")
	playCmd.Flags().IntVarP(&playFlags.mines, "mines", "M", 8, "mine count")
	playCmd.Flags().IntVarP(&playFlags.games, "games", "n", 100, "number of games")
	playCmd.Flags().Uint64Var(&playFlags.seed, "seed", 0, "PRNG seed (0 = random)")

	rootCmd.AddCommand(playCmd)
}

func createRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func runPlay(cmd *cobra.Command, args []string) error {
	params := mines.GameParams{
		Width:     playFlags.width,
		Height:    playFlags.height,
		MineCount: playFlags.mines,
	}
	if err := params.Validate(); err != nil {
		return err
	}

	batchID := uuid.New()
	rnd := createRand(playFlags.seed)
	log.WithFields(logrus.Fields{
		"batch":  batchID,
		"params": params.String(),
		"games":  playFlags.games,
	}).Info("starting batch")

	var won, dead, safeMoves, randomMoves int
	for range playFlags.games {
		game, err := mines.NewGame(params, rnd)
		if err != nil {
			return err
		}
		agent := solver.NewAgent(params.Width, params.Height, rnd)

		result := autoplay.Play(game, agent)
		if result.Won {
			won++
		}
		if result.Dead {
			dead++
		}
		safeMoves += result.SafeMoves
		randomMoves += result.RandomMoves

		log.WithFields(logrus.Fields{
			"batch":        batchID,
			"won":          result.Won,
			"moves":        len(result.Moves),
			"safe_moves":   result.SafeMoves,
			"random_moves": result.RandomMoves,
			"mines_found":  result.MinesFound,
		}).Debug("game over")
	}

	fmt.Printf("batch %s: %s x%d\n", batchID, params, playFlags.games)
	fmt.Printf("won  %d (%.1f%%)\n", won, 100*float64(won)/float64(playFlags.games))
	fmt.Printf("dead %d (%.1f%%)\n", dead, 100*float64(dead)/float64(playFlags.games))
	fmt.Printf("moves: %d safe, %d guessed\n", safeMoves, randomMoves)
	return nil
}
