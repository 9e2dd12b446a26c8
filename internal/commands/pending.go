package commands

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/importer"
	"github.com/settled-dev/settled/internal/model"
	"github.com/settled-dev/settled/internal/pending"
)

func newPendingCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Manage the staging area for unclassified transactions",
	}
	cmd.AddCommand(newPendingListCommand(configPath))
	cmd.AddCommand(newPendingAddCommand(configPath))
	cmd.AddCommand(newPendingDeleteCommand(configPath))
	cmd.AddCommand(newPendingClearCommand(configPath))
	cmd.AddCommand(newPendingImportCommand(configPath))
	return cmd
}

func newPendingImportCommand(configPath *string) *cobra.Command {
	var account, format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank CSV export into the staging area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			pts, err := parser.Parse(f, account)
			if err != nil {
				return err
			}

			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			svc := pending.NewService(e.store)
			for _, pt := range pts {
				if _, err := svc.Insert(cmd.Context(), pt); err != nil {
					return err
				}
			}
			fmt.Printf("staged %d transactions\n", len(pts))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account (name_owner) to stage against")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&format, "format", "chase", "bank export format")

	return cmd
}

func newPendingListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staged transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			pts, err := pending.NewService(e.store).All(cmd.Context())
			if err != nil {
				return err
			}
			for _, pt := range pts {
				fmt.Printf("%d\t%s\t%s\t%s\t%s\n",
					pt.PendingTransactionID, pt.TransactionDate.Format("2006-01-02"),
					pt.AccountNameOwner, pt.Amount.StringFixed(2), pt.Description)
			}
			return nil
		},
	}
}

func newPendingAddCommand(configPath *string) *cobra.Command {
	var account, amountStr, dateStr, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Stage a transaction for later classification",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amountStr, err)
			}
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("parsing date %q: %w", dateStr, err)
			}

			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			pt, err := pending.NewService(e.store).Insert(cmd.Context(), model.PendingTransaction{
				AccountNameOwner: account,
				TransactionDate:  date,
				Description:      description,
				Amount:           amount,
			})
			if err != nil {
				return err
			}
			fmt.Printf("staged transaction %d\n", pt.PendingTransactionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account (name_owner)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dateStr, "date", time.Now().Format("2006-01-02"), "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "description")

	return cmd
}

func newPendingDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Discard a staged transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parsing pending id %q: %w", args[0], err)
			}

			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			if err := pending.NewService(e.store).DeleteByID(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("pending transaction %d deleted\n", id)
			return nil
		},
	}
}

func newPendingClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the whole staging area",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			if err := pending.NewService(e.store).DeleteAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("staging area cleared")
			return nil
		},
	}
}
