package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/config"
	"github.com/settled-dev/settled/internal/model"
	"github.com/settled-dev/settled/internal/store"
)

func newInitCommand() *cobra.Command {
	var dbPath string
	var paymentAccount string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new settled ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd.Context(), absDir, dbPath, paymentAccount)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "settled.db", "database file, relative to the ledger directory")
	cmd.Flags().StringVar(&paymentAccount, "payment-account", "", "account funding bill payments (name_owner)")

	return cmd
}

func runInit(ctx context.Context, dir, dbPath, paymentAccount string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	configPath := filepath.Join(dir, "settled.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	cfg := config.Default(filepath.Join(dir, dbPath))
	cfg.Payment.Account = paymentAccount
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	if paymentAccount != "" {
		now := time.Now()
		err := st.SaveParameter(ctx, model.Parameter{
			Name:         model.ParamPaymentAccount,
			Value:        paymentAccount,
			ActiveStatus: true,
			DateAdded:    now,
			DateUpdated:  now,
		})
		if err != nil {
			return err
		}
	}

	fmt.Printf("Initialized settled ledger in %s\n", dir)
	return nil
}
