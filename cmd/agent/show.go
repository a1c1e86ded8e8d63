package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sweeperd/minesweeper-agent/internal/autoplay"
	"github.com/sweeperd/minesweeper-agent/internal/mines"
	"github.com/sweeperd/minesweeper-agent/internal/solver"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Auto-play a single game and print the transcript",
	RunE:  runShow,
}

func init() {
	showCmd.Flags().IntVarP(&playFlags.width, "width", "W", 8, "board width")
	showCmd.Flags().IntVarP(&playFlags.height, "height", "H", 8, "board height")
	showCmd.Flags().IntVarP(&playFlags.mines, "mines", "M", 8, "mine count")
	showCmd.Flags().Uint64Var(&playFlags.seed, "seed", 0, "PRNG seed (0 = random)")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	params := mines.GameParams{
		Width:     playFlags.width,
		Height:    playFlags.height,
		MineCount: playFlags.mines,
	}
	if err := params.Validate(); err != nil {
		return err
	}

	rnd := createRand(playFlags.seed)
	game, err := mines.NewGame(params, rnd)
	if err != nil {
		return err
	}
	agent := solver.NewAgent(params.Width, params.Height, rnd)

	moveNo := 0
	for {
		move, ok := autoplay.Step(game, agent)
		if !ok {
			break
		}
		moveNo++
		kind := "guess"
		if move.Safe {
			kind = "safe"
		}
		if move.Count < 0 {
			fmt.Printf("%3d. open %s (%s) -> mine\n", moveNo, move.Cell, kind)
		} else {
			fmt.Printf("%3d. open %s (%s) -> %d\n", moveNo, move.Cell, kind, move.Count)
		}
	}

	autoplay.FlagMines(game, agent)
	game.RevealMines()

	fmt.Println()
	fmt.Print(game.PlayerGrid.ToString(game.Width))
	switch {
	case game.Won:
		fmt.Println("won")
	case game.Dead:
		fmt.Println("dead")
	default:
		fmt.Println("out of moves")
	}
	return nil
}
