package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aaparts/whatif-margin/internal/margin"
)

const regionWarning = "Please select a valid Location Region before calculation."

var (
	region      string
	basePrice   float64
	sellingCost float64
	discountPct float64
	quantity    int
	jsonOutput  bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate margin metrics for one price",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if region == margin.Unselected {
			fmt.Fprintln(cmd.ErrOrStderr(), regionWarning)
			return nil
		}

		result := margin.Calculate(margin.Input{
			BasePrice:   basePrice,
			SellingCost: sellingCost,
			DiscountPct: discountPct,
			Quantity:    quantity,
			Region:      region,
		}).Rounded()

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		return printResult(cmd.OutOrStdout(), result)
	},
}

func init() {
	addInputFlags(calcCmd)
	calcCmd.Flags().Float64Var(&discountPct, "discount", 5, "discount percent")
	calcCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
}

func addInputFlags(c *cobra.Command) {
	c.Flags().StringVarP(&region, "region", "r", "", "location region (WEST, CENTRAL, NORTHEAST, SOUTHEAST)")
	c.Flags().Float64Var(&basePrice, "base-price", 900, "base price ($)")
	c.Flags().Float64Var(&sellingCost, "selling-cost", 620, "selling cost ($)")
	c.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity")
}

func printResult(w io.Writer, r margin.Result) error {
	pct := func(v float64) string {
		if !r.PercentDefined {
			return "n/a"
		}
		return fmt.Sprintf("%.2f", v)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Metric\tValue\n")
	fmt.Fprintf(tw, "Selling Price\t%.2f\n", r.SellingPrice)
	fmt.Fprintf(tw, "Adjusted Cost\t%.2f\n", r.AdjustedCost)
	fmt.Fprintf(tw, "Gross Margin\t%.2f\n", r.GrossMargin)
	fmt.Fprintf(tw, "Gross Margin %% (raw)\t%s\n", pct(r.GrossMarginPct))
	fmt.Fprintf(tw, "Gross Margin %% (adj for data variation)\t%s\n", pct(r.GrossMarginPctAdjusted))
	fmt.Fprintf(tw, "Total Profit\t%.2f\n", r.TotalProfit)
	return tw.Flush()
}
