package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmf229/op-net-rate/internal/app"
)

var (
	drilldownLevel   string
	drilldownParent  string
	drilldownPeriod  string
	drilldownMonth   int
	drilldownYear    int
	drilldownCSV     string
	drilldownMaxRows int
)

var drilldownCmd = &cobra.Command{
	Use:   "drilldown <driver>",
	Short: "Show entity detail behind one waterfall driver",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch drilldownLevel {
		case "region", "market", "clinic", "therapist":
		default:
			return fmt.Errorf("--level must be region, market, clinic, or therapist")
		}
		if drilldownLevel != "region" && drilldownParent == "" {
			return fmt.Errorf("--parent is required below the region level")
		}

		opts := app.DrillDownOptions{
			Driver:   args[0],
			Level:    drilldownLevel,
			ParentID: drilldownParent,
			Period:   drilldownPeriod,
			Month:    drilldownMonth,
			Year:     drilldownYear,
			CSVPath:  drilldownCSV,
			MaxRows:  drilldownMaxRows,
		}
		return getApp().DrillDown(cmd.Context(), opts)
	},
}

func init() {
	drilldownCmd.Flags().StringVar(&drilldownLevel, "level", "region", "Entity level (region, market, clinic, therapist)")
	drilldownCmd.Flags().StringVar(&drilldownParent, "parent", "", "Parent entity id for levels below region")
	drilldownCmd.Flags().StringVar(&drilldownPeriod, "period", "mtd", "Comparison period (mtd, qtd, ytd)")
	drilldownCmd.Flags().IntVar(&drilldownMonth, "month", 0, "Reporting month (defaults to current)")
	drilldownCmd.Flags().IntVar(&drilldownYear, "year", 0, "Reporting year (defaults to current)")
	drilldownCmd.Flags().StringVar(&drilldownCSV, "csv", "", "Path to write the detail CSV")
	drilldownCmd.Flags().IntVar(&drilldownMaxRows, "max-rows", 0, "Maximum rows to keep (defaults to config)")
}
