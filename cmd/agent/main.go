package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"
)

var (
	log = logrus.New()

	verbose bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "agent",
	Short: "Minesweeper playing agent",
	Long: "Plays Minesweeper by inference: each revealed clue becomes a " +
		"sentence over its unexplored neighbors, and subset elimination " +
		"over those sentences yields provably safe cells and mines.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

func setupLogging() error {
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if logFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write a rotating JSON log to this file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
