package cli

import (
	"github.com/spf13/cobra"

	"github.com/kmf229/op-net-rate/internal/app"
)

var (
	waterfallPeriod string
	waterfallMonth  int
	waterfallYear   int
	waterfallRegion string
	waterfallInput  string
	waterfallPNG    string
	waterfallCSV    string
)

var waterfallCmd = &cobra.Command{
	Use:   "waterfall",
	Short: "Show the net rate decomposition waterfall",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.WaterfallOptions{
			Period:    waterfallPeriod,
			Month:     waterfallMonth,
			Year:      waterfallYear,
			RegionID:  waterfallRegion,
			InputPath: waterfallInput,
			PNGPath:   waterfallPNG,
			CSVPath:   waterfallCSV,
		}
		return getApp().Waterfall(cmd.Context(), opts)
	},
}

func init() {
	waterfallCmd.Flags().StringVar(&waterfallPeriod, "period", "mtd", "Comparison period (mtd, qtd, ytd)")
	waterfallCmd.Flags().IntVar(&waterfallMonth, "month", 0, "Reporting month (defaults to current)")
	waterfallCmd.Flags().IntVar(&waterfallYear, "year", 0, "Reporting year (defaults to current)")
	waterfallCmd.Flags().StringVar(&waterfallRegion, "region", "", "Filter to one region id")
	waterfallCmd.Flags().StringVar(&waterfallInput, "input", "", "Read a decomposition JSON file instead of fetching")
	waterfallCmd.Flags().StringVar(&waterfallPNG, "png", "", "Path to write the waterfall PNG")
	waterfallCmd.Flags().StringVar(&waterfallCSV, "csv", "", "Path to write the segment CSV")
}
