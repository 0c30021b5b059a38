package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aaparts/whatif-margin/internal/catalog"
	"github.com/aaparts/whatif-margin/internal/dataset"
	"github.com/aaparts/whatif-margin/internal/db"
	"github.com/aaparts/whatif-margin/internal/logging"
)

var catalogRegion string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the regions, selling locations and areas of the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rows, err := dataset.Load(datasetPath, datasetSheet)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}

		cat, stats, err := catalog.Build(ctx, db.MemoryPath, rows)
		if err != nil {
			return fmt.Errorf("build catalog: %w", err)
		}
		defer cat.Close()
		logging.Logger.Debug("catalog built", zap.Int("rows", stats.Rows), zap.Int("entries", stats.Inserts))
		if stats.Inserts == 0 {
			logging.Warn("dataset has no catalog values", zap.String("path", datasetPath))
		}

		regions, err := cat.Regions(ctx)
		if err != nil {
			return err
		}
		opts, err := cat.Options(ctx, catalogRegion)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printList(out, "Regions", regions)
		printList(out, "Selling Locations", opts.SellingLocations)
		printList(out, "Area Names", opts.AreaNames)
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogRegion, "region", "r", "", "only list locations and areas of this region")
}

func printList(w io.Writer, title string, values []string) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(values))
	if len(values) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(values, "\n  "))
	}
}
