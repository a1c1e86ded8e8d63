package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/sweeperd/minesweeper-agent/internal/app"
	"github.com/sweeperd/minesweeper-agent/internal/autoplay"
	"github.com/sweeperd/minesweeper-agent/internal/config"
	"github.com/sweeperd/minesweeper-agent/internal/solver"
	"github.com/sweeperd/minesweeper-agent/migrations"
)

func createLogger() *slog.Logger {
	if config.Development() {
		return slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func main() {
	logger := createLogger()
	solver.Log = logger
	autoplay.Log = logger

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	a := app.New(logger, migrations.FS)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Start(gCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("exit reason", slog.Any("error", err))
		os.Exit(1)
	}
}
