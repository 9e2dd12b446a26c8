package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/merge"
)

func newMergeCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge duplicate categories or descriptions",
	}

	var target, source string

	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Merge a duplicate category into a canonical one",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			engine := merge.NewEngine(e.store, e.log)
			merged, err := engine.MergeCategories(cmd.Context(), target, source)
			if err != nil {
				return err
			}
			fmt.Printf("category %s now has %d transactions; %s deactivated\n",
				merged.Name, merged.Count, source)
			return nil
		},
	}

	descriptionCmd := &cobra.Command{
		Use:   "description",
		Short: "Merge a duplicate description into a canonical one",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			engine := merge.NewEngine(e.store, e.log)
			merged, err := engine.MergeDescriptions(cmd.Context(), target, source)
			if err != nil {
				return err
			}
			fmt.Printf("description %s now has %d transactions; %s deactivated\n",
				merged.Name, merged.Count, source)
			return nil
		},
	}

	for _, sub := range []*cobra.Command{categoryCmd, descriptionCmd} {
		sub.Flags().StringVar(&target, "target", "", "canonical name to keep")
		_ = sub.MarkFlagRequired("target")
		sub.Flags().StringVar(&source, "source", "", "duplicate name to fold in")
		_ = sub.MarkFlagRequired("source")
		cmd.AddCommand(sub)
	}

	cmd.AddCommand(newRecountCommand(configPath))
	return cmd
}

func newRecountCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "recount <category|description> <name>",
		Short: "Repair a denormalized transaction count from the ledger",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			engine := merge.NewEngine(e.store, e.log)
			switch args[0] {
			case "category":
				c, err := engine.RecountCategory(cmd.Context(), args[1])
				if err != nil {
					return err
				}
				fmt.Printf("category %s count repaired to %d\n", c.Name, c.Count)
			case "description":
				d, err := engine.RecountDescription(cmd.Context(), args[1])
				if err != nil {
					return err
				}
				fmt.Printf("description %s count repaired to %d\n", d.Name, d.Count)
			default:
				return fmt.Errorf("unknown entity %q: want category or description", args[0])
			}
			return nil
		},
	}
}
