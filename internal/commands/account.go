package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/errs"
	"github.com/settled-dev/settled/internal/model"
)

func newAccountCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountAddCommand(configPath))
	cmd.AddCommand(newAccountListCommand(configPath))
	return cmd
}

func newAccountAddCommand(configPath *string) *cobra.Command {
	var accountType string

	cmd := &cobra.Command{
		Use:   "add <name_owner>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nameOwner := args[0]
			if !model.ValidNameOwner(nameOwner) {
				return &errs.ValidationError{Entity: "account", Violations: []errs.Violation{{
					Field:   "accountNameOwner",
					Message: "must be in name_owner form",
				}}}
			}
			at := model.AccountType(accountType)
			if at != model.AccountTypeDebit && at != model.AccountTypeCredit {
				return &errs.ValidationError{Entity: "account", Violations: []errs.Violation{{
					Field:   "accountType",
					Message: "must be debit or credit",
				}}}
			}

			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			now := time.Now()
			if err := e.store.InsertAccount(cmd.Context(), model.Account{
				NameOwner:    nameOwner,
				AccountType:  at,
				ActiveStatus: true,
				DateAdded:    now,
				DateUpdated:  now,
			}); err != nil {
				return err
			}
			fmt.Printf("account %s created\n", nameOwner)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "debit", "account type (debit or credit)")

	return cmd
}

func newAccountListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			accounts, err := e.store.Accounts(cmd.Context())
			if err != nil {
				return err
			}
			for _, a := range accounts {
				stale := ""
				if a.TotalsStale {
					stale = "\t(totals stale)"
				}
				fmt.Printf("%s\t%s\tcleared %s%s\n",
					a.NameOwner, a.AccountType, a.TotalCleared.StringFixed(2), stale)
			}
			return nil
		},
	}
}
