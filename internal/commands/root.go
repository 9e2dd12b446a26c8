// Package commands wires the ledger services into the settled CLI.
package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/buildinfo"
	"github.com/settled-dev/settled/internal/config"
	"github.com/settled-dev/settled/internal/logger"
	"github.com/settled-dev/settled/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "settled",
		Short:   "Personal and family finance ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "settled.yaml", "path to settled.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountCommand(&configPath))
	rootCmd.AddCommand(newTxCommand(&configPath))
	rootCmd.AddCommand(newPaymentCommand(&configPath))
	rootCmd.AddCommand(newStateCommand(&configPath))
	rootCmd.AddCommand(newMergeCommand(&configPath))
	rootCmd.AddCommand(newTotalsCommand(&configPath))
	rootCmd.AddCommand(newPendingCommand(&configPath))

	return rootCmd
}

// env bundles what every subcommand needs: config, store, logger.
type env struct {
	cfg   *config.Config
	store *store.Store
	log   zerolog.Logger
}

func openEnv(configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:   cfg,
		store: st,
		log:   logger.New(cfg.Logging.Level),
	}, nil
}

func (e *env) close() {
	_ = e.store.Close()
}
