package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/ledger"
	"github.com/settled-dev/settled/internal/model"
)

func newStateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state <guid> <future|outstanding|cleared>",
		Short: "Move a transaction to a new lifecycle state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			svc := ledger.NewService(e.store)
			t, err := svc.UpdateState(cmd.Context(), args[0], model.TransactionState(args[1]))
			if err != nil {
				return err
			}

			fmt.Printf("transaction %s is now %s\n", t.GUID, t.TransactionState)
			return nil
		},
	}
}
