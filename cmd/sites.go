package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/css-ra/tnrange-cli/internal/edf"
)

var sitesDialPlan string

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List sites and access circuits for a dial plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sitesDialPlan == "" {
			return eris.New("--dialplan is required")
		}

		ctx := cmd.Context()
		exec, err := initExecutor(ctx)
		if err != nil {
			return err
		}
		defer exec.Close()

		pages := edf.NewPaginator(exec, cfg.EDF.PageSize, cfg.EDF.MaxConcurrentPages)
		rows, err := pages.QueryPaged(ctx, edf.SitesByDialPlan(sitesDialPlan))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	},
}

func init() {
	sitesCmd.Flags().StringVar(&sitesDialPlan, "dialplan", "", "dial plan ID")
	rootCmd.AddCommand(sitesCmd)
}
