package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/sweeperd/minesweeper-agent/internal/config"
	"github.com/sweeperd/minesweeper-agent/internal/database"
	"github.com/sweeperd/minesweeper-agent/migrations"
)

func main() {
	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	migrator, err := database.Migrate(migrations.FS)
	if err != nil {
		logger.Error("failed to migrate db", slog.Any("error", err))
		os.Exit(1)
	}
	version, dirty, err := migrator.Version()
	if err != nil {
		logger.Error("failed to check migration version", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("migration successful",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
}
