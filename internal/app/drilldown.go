package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kmf229/op-net-rate/internal/decomp"
	"github.com/kmf229/op-net-rate/internal/export"
	"github.com/kmf229/op-net-rate/internal/fetcher"
	"github.com/kmf229/op-net-rate/internal/format"
)

// DrillDownOptions configure the drilldown command.
type DrillDownOptions struct {
	Driver   string
	Level    string
	ParentID string
	Period   string
	Month    int
	Year     int
	CSVPath  string
	MaxRows  int
}

// DrillDown fetches the entity detail behind one driver and prints it,
// optionally writing a CSV export.
func (a *App) DrillDown(ctx context.Context, opts DrillDownOptions) error {
	stage, ok := decomp.DriverByKey(opts.Driver)
	if !ok {
		return fmt.Errorf("unknown driver %q; valid drivers: %s", opts.Driver, driverKeys())
	}

	viewType, err := normalizePeriod(opts.Period)
	if err != nil {
		return err
	}

	a.Alerts.SetLoading("drilldown", true)
	defer a.Alerts.SetLoading("drilldown", false)

	now := time.Now()
	if opts.Month <= 0 {
		opts.Month = int(now.Month())
	}
	if opts.Year <= 0 {
		opts.Year = now.Year()
	}

	rows, err := a.newClient().DrillDown(ctx, fetcher.DrillDownQuery{
		Driver:   opts.Driver,
		Level:    opts.Level,
		ParentID: opts.ParentID,
		ViewType: viewType,
		Month:    opts.Month,
		Year:     opts.Year,
	})
	if err != nil {
		return err
	}

	maxRows := a.Config.ResolveMaxRows(opts.MaxRows)
	if len(rows) > maxRows {
		a.Logger.Info().Int("total", len(rows)).Int("kept", maxRows).Msg("truncating drill-down rows")
		rows = rows[:maxRows]
	}

	fmt.Fprintf(os.Stdout, "%s drill-down (%s level)\n\n", stage.Label, opts.Level)
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "no data for this window")
		return nil
	}

	printDrillDownRows(rows)

	if opts.CSVPath != "" {
		if err := export.WriteFile(opts.CSVPath, drillDownRecords(rows)); err != nil {
			return err
		}
		a.Alerts.Success("Export complete.")
	}

	return nil
}

func driverKeys() string {
	keys := ""
	for i, stage := range decomp.DriverStages {
		if i > 0 {
			keys += ", "
		}
		keys += stage.Key
	}
	return keys
}

func printDrillDownRows(rows []fetcher.DrillDownRow) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Name\tVisits\tNet Rate\tPrior Rate\tRevenue\tUnits/Visit")

	for _, row := range rows {
		fmt.Fprintf(
			writer,
			"%s\t%d\t%s\t%s\t%s\t%s\n",
			row.Name,
			row.Visits,
			format.Currency(row.AvgNetRate),
			format.Currency(row.PriorAvgNetRate),
			format.Currency(row.TotalRevenue),
			format.Number(row.UnitsPerVisit),
		)
	}

	writer.Flush()
}

func drillDownRecords(rows []fetcher.DrillDownRow) []export.Record {
	records := make([]export.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, export.Record{
			{Key: "id", Value: row.ID},
			{Key: "name", Value: row.Name},
			{Key: "visits", Value: row.Visits},
			{Key: "avg_net_rate", Value: row.AvgNetRate},
			{Key: "total_revenue", Value: row.TotalRevenue},
			{Key: "units_per_visit", Value: row.UnitsPerVisit},
			{Key: "total_copay_expected", Value: row.CopayExpected},
			{Key: "total_copay_collected", Value: row.CopayCollected},
			{Key: "total_writeoffs", Value: row.Writeoffs},
			{Key: "prior_visits", Value: row.PriorVisits},
			{Key: "prior_avg_net_rate", Value: row.PriorAvgNetRate},
		})
	}
	return records
}
