// Package cli implements the mythosd CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eidora/mythos/internal/config"
	"github.com/eidora/mythos/internal/engine"
	"github.com/eidora/mythos/internal/llm"
	"github.com/eidora/mythos/internal/store"
)

var (
	cfgPath    string
	dbPath     string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "mythosd",
	Short: "MythOS narrative engine",
	Long:  "MythOS transforms AI interaction logs into mythological narrative fragments and dream sequences. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "mythos.yaml", "Config file path")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (overrides config)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	return cfg, nil
}

// openEngine builds the engine stack from configuration, exiting on
// failure. The caller closes the returned archive.
func openEngine() (*engine.Engine, *store.Archive) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}

	archive, err := store.Open(cfg.DatabasePath)
	if err != nil {
		exitErr("open archive", err)
	}

	client := llm.NewClient(cfg.Model.APIKey, cfg.Model.Name)
	return engine.New(archive, client), archive
}

// openArchive opens just the store, for commands that bypass the engine.
func openArchive() *store.Archive {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}

	archive, err := store.Open(cfg.DatabasePath)
	if err != nil {
		exitErr("open archive", err)
	}
	return archive
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
