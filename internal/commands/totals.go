package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/totals"
)

func newTotalsCommand(configPath *string) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "totals <account>",
		Short: "Show per-state totals for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			calc := totals.NewCalculator(e.store, e.log)
			nameOwner := args[0]

			if refresh {
				if err := calc.Refresh(cmd.Context(), nameOwner, time.Now()); err != nil {
					return err
				}
			}

			t := calc.ActiveByAccount(cmd.Context(), nameOwner)
			if !totals.Validate(t) {
				return fmt.Errorf("totals for %q failed consistency check", nameOwner)
			}

			fmt.Printf("future:      %s\n", t.Future.StringFixed(2))
			fmt.Printf("outstanding: %s\n", t.Outstanding.StringFixed(2))
			fmt.Printf("cleared:     %s\n", t.Cleared.StringFixed(2))
			fmt.Printf("grand total: %s\n", t.GrandTotal.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and persist the cached account totals")
	return cmd
}
