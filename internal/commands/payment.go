package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/model"
	"github.com/settled-dev/settled/internal/payments"
)

func newPaymentCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Create and delete bill payments",
	}
	cmd.AddCommand(newPaymentInsertCommand(configPath))
	cmd.AddCommand(newPaymentDeleteCommand(configPath))
	return cmd
}

func newPaymentInsertCommand(configPath *string) *cobra.Command {
	var account string
	var amountStr string
	var dateStr string

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Pay a bill, generating the linked transaction pair",
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

			processor := payments.NewProcessor(e.store, e.log)
			payment, err := processor.Insert(cmd.Context(), model.Payment{
				AccountNameOwner: account,
				Amount:           amount,
				TransactionDate:  date,
			})
			if err != nil {
				return err
			}

			fmt.Printf("payment %d: %s -> %s (source %s, destination %s)\n",
				payment.PaymentID, payment.Amount.StringFixed(2), account,
				payment.GUIDSource, payment.GUIDDestination)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account being paid (name_owner)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&amountStr, "amount", "", "payment amount")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dateStr, "date", time.Now().Format("2006-01-02"), "transaction date (YYYY-MM-DD)")

	return cmd
}

func newPaymentDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <payment-id>",
		Short: "Delete a payment record (linked transactions remain)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parsing payment id %q: %w", args[0], err)
			}

			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			processor := payments.NewProcessor(e.store, e.log)
			if err := processor.DeleteByID(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("payment %d deleted\n", id)
			return nil
		},
	}
}
