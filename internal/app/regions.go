package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

// Regions lists the regions available for filtering the waterfall.
func (a *App) Regions(ctx context.Context) error {
	a.Alerts.SetLoading("regions", true)
	defer a.Alerts.SetLoading("regions", false)

	regions, err := a.newClient().Regions(ctx)
	if err != nil {
		return err
	}

	if len(regions) == 0 {
		fmt.Fprintln(os.Stdout, "no regions found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tRegion")
	for _, region := range regions {
		fmt.Fprintf(writer, "%d\t%s\n", region.RegionID, region.RegionName)
	}
	writer.Flush()
	return nil
}
