// Command mythosd runs the MythOS narrative engine.
package main

import (
	"log/slog"
	"os"

	"github.com/eidora/mythos/internal/cli"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
