package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"librarian-backend/internal/config"
	"librarian-backend/pkg/container"
	"librarian-backend/pkg/logger"
)

// skipContainer marks commands that only talk to Redis.
const skipContainer = "skip-container"

// app carries state shared by all subcommands.
type app struct {
	out       io.Writer
	envFile   string
	store     string
	cfg       *config.Config
	container *container.Container
	owned     bool // container built here and closed after the command
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "librarianctl",
		Short:        "Administer the librarian store from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.teardown()
		},
	}
	root.SetOut(a.out)

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&a.store, "store", "", "override STORE_DRIVER (postgres or memory)")

	root.AddCommand(
		newImportCmd(a),
		newExportCmd(a),
		newStatsCmd(a),
		newMigrateCmd(a),
		newEnqueueCmd(a),
		newArchiveCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.cfg != nil {
		return nil
	}

	if err := godotenv.Load(a.envFile); err != nil {
		log.Printf("⚠️  %s not loaded, using system environment variables", a.envFile)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.store != "" {
		cfg.Store.Driver = strings.ToLower(a.store)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	if cmd.Annotations[skipContainer] == "true" || a.container != nil {
		return nil
	}

	c, err := container.NewContainerWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	a.container = c
	a.owned = true
	return nil
}

func (a *app) teardown() {
	if a.owned && a.container != nil {
		a.container.Cleanup()
	}
}
