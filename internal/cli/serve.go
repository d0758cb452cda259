package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eidora/mythos/internal/api"
	"github.com/eidora/mythos/internal/engine"
	"github.com/eidora/mythos/internal/llm"
	"github.com/eidora/mythos/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Serve the mythology engine over HTTP until interrupted.",
		Run:   runServe,
	}

	cmd.Flags().IntP("port", "p", 0, "Listen port (overrides config)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		exitErr("config", err)
	}

	archive, err := store.Open(cfg.DatabasePath)
	if err != nil {
		exitErr("open archive", err)
	}
	defer archive.Close()

	client := llm.NewClient(cfg.Model.APIKey, cfg.Model.Name)
	srv := &api.Server{
		Engine:  engine.New(archive, client),
		Archive: archive,
		Port:    cfg.Port,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		exitErr("serve", err)
	}
}
