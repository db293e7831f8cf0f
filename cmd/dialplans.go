package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/css-ra/tnrange-cli/internal/report"
)

var dialplansCustomers []string

var dialplansCmd = &cobra.Command{
	Use:   "dialplans",
	Short: "Resolve dial plan IDs from customer names",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(dialplansCustomers) == 0 {
			return eris.New("at least one --customer is required")
		}

		ctx := cmd.Context()
		exec, err := initExecutor(ctx)
		if err != nil {
			return err
		}
		defer exec.Close()

		builder := report.NewBuilder(exec, builderOptions())
		refs, err := builder.ResolveDialPlans(ctx, nil, dialplansCustomers)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(refs)
	},
}

func init() {
	dialplansCmd.Flags().StringSliceVar(&dialplansCustomers, "customer", nil, "customer name (repeatable)")
	rootCmd.AddCommand(dialplansCmd)
}
