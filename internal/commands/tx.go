package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/ledger"
	"github.com/settled-dev/settled/internal/model"
)

func newTxCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
	}
	cmd.AddCommand(newTxAddCommand(configPath))
	cmd.AddCommand(newTxListCommand(configPath))
	cmd.AddCommand(newTxDeleteCommand(configPath))
	return cmd
}

func newTxAddCommand(configPath *string) *cobra.Command {
	var account, amountStr, dateStr, category, description, notes string
	var reoccurring bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
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

			t, err := ledger.NewService(e.store).Insert(cmd.Context(), model.Transaction{
				AccountNameOwner: account,
				TransactionDate:  date,
				Description:      description,
				Category:         category,
				Amount:           amount,
				Reoccurring:      reoccurring,
				Notes:            notes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("transaction %s recorded (%s)\n", t.GUID, t.TransactionState)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account (name_owner)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dateStr, "date", time.Now().Format("2006-01-02"), "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	cmd.Flags().BoolVar(&reoccurring, "reoccurring", false, "recurring transaction")

	return cmd
}

func newTxListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list <account>",
		Short: "List transactions for an account, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			txs, err := e.store.TransactionsByAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, t := range txs {
				fmt.Printf("%s\t%s\t%-11s\t%s\t%s\t%s\n",
					t.GUID, t.TransactionDate.Format("2006-01-02"), t.TransactionState,
					t.Amount.StringFixed(2), t.Category, t.Description)
			}
			return nil
		},
	}
}

func newTxDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <guid>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			if err := ledger.NewService(e.store).DeleteByGUID(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("transaction %s deleted\n", args[0])
			return nil
		},
	}
}
