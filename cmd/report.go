package main

import (
	"context"
	"encoding/base64"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/css-ra/tnrange-cli/internal/report"
)

var (
	reportDialPlans []string
	reportCustomers []string
	reportOut       string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the TN range report for dial plans or customer names",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(reportDialPlans) == 0 && len(reportCustomers) == 0 {
			return eris.New("at least one --dialplan or --customer is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Report.Timeout())
		defer cancel()

		exec, err := initExecutor(ctx)
		if err != nil {
			return err
		}
		defer exec.Close()

		builder := report.NewBuilder(exec, builderOptions())

		refs, err := builder.ResolveDialPlans(ctx, reportDialPlans, reportCustomers)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(refs))
		for _, ref := range refs {
			ids = append(ids, ref.DialPlanID)
		}
		zap.L().Info("dial plans to report on", zap.Strings("dial_plan_ids", ids))

		rep, err := builder.Build(ctx, ids)
		if err != nil {
			return err
		}

		encoded, err := report.Encode(rep, reportLayout())
		if err != nil {
			return err
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return eris.Wrap(err, "decode workbook")
		}

		out := reportOut
		if out == "" {
			out = report.Filename(time.Now())
		}
		if err := os.WriteFile(out, raw, 0o644); err != nil {
			return eris.Wrap(err, "write workbook")
		}

		zap.L().Info("report written",
			zap.String("file", out),
			zap.Int("tn_ranges", len(rep.TNRanges)),
			zap.Int("cnam", len(rep.CNAM)),
			zap.Int("toll_free", len(rep.TollFree)))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringSliceVar(&reportDialPlans, "dialplan", nil, "dial plan ID (repeatable)")
	reportCmd.Flags().StringSliceVar(&reportCustomers, "customer", nil, "customer name (repeatable)")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "output file (default timestamped name)")
	rootCmd.AddCommand(reportCmd)
}
