package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aaparts/whatif-margin/internal/chart"
	"github.com/aaparts/whatif-margin/internal/logging"
	"github.com/aaparts/whatif-margin/internal/margin"
)

var pngPath string

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Print gross margin for discounts 0% to 50% in 5% steps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if region == margin.Unselected {
			fmt.Fprintln(cmd.ErrOrStderr(), regionWarning)
			return nil
		}

		points := margin.Sweep(basePrice, sellingCost, quantity, region, margin.DefaultDiscounts())

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Discount %%\tGross Margin\tGross Margin %%\tAdjusted %%\n")
		for _, p := range points {
			p = p.Rounded()
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				decimal.NewFromFloat(p.DiscountPct).StringFixed(1),
				decimal.NewFromFloat(p.GrossMargin).StringFixed(2),
				decimal.NewFromFloat(p.GrossMarginPct).StringFixed(2),
				decimal.NewFromFloat(p.GrossMarginPctAdjusted).StringFixed(2),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if pngPath == "" {
			return nil
		}
		f, err := os.Create(pngPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", pngPath, err)
		}
		defer f.Close()
		if err := chart.WritePNG(f, region, points); err != nil {
			return err
		}
		logging.Info("chart written", zap.String("path", pngPath))
		return nil
	},
}

func init() {
	addInputFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&pngPath, "png", "", "also write the sensitivity chart to this PNG file")
}
