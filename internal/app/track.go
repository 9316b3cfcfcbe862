package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/kmf229/op-net-rate/internal/decomp"
	"github.com/kmf229/op-net-rate/internal/export"
	"github.com/kmf229/op-net-rate/internal/format"
	"github.com/kmf229/op-net-rate/internal/store"
)

// TrackAddOptions describe the item being flagged for tracking.
type TrackAddOptions struct {
	EntityName    string
	EntityType    string
	EntityID      string
	Driver        string
	BaselineValue float64
	BaselineDate  string
}

// TrackList prints the tracked-items collection, optionally as CSV.
func (a *App) TrackList(ctx context.Context, csvPath string) error {
	items, closer, err := a.openTrackedItems(ctx)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	list, err := items.List(ctx)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(os.Stdout, "no tracked items")
		return nil
	}

	printTrackedItems(list)

	if csvPath != "" {
		if err := export.WriteFile(csvPath, trackedItemRecords(list)); err != nil {
			return err
		}
		a.Alerts.Success("Export complete.")
	}
	return nil
}

// TrackAdd appends a tracked item and reports the updated collection size.
func (a *App) TrackAdd(ctx context.Context, opts TrackAddOptions) error {
	if opts.EntityName == "" || opts.EntityID == "" {
		return fmt.Errorf("--name and --entity-id are required")
	}
	if _, ok := decomp.DriverByKey(opts.Driver); !ok {
		return fmt.Errorf("unknown driver %q; valid drivers: %s", opts.Driver, driverKeys())
	}
	if opts.EntityType == "" {
		opts.EntityType = "region"
	}

	items, closer, err := a.openTrackedItems(ctx)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	list, err := items.Add(ctx, store.TrackedItem{
		EntityName:    opts.EntityName,
		EntityType:    opts.EntityType,
		EntityID:      opts.EntityID,
		Driver:        opts.Driver,
		BaselineValue: decimal.NewFromFloat(opts.BaselineValue),
		BaselineDate:  opts.BaselineDate,
	})
	if err != nil {
		return err
	}

	a.Alerts.Success("Item added to tracking.")
	fmt.Fprintf(os.Stdout, "tracking %d item(s)\n", len(list))
	return nil
}

// TrackRemove drops a tracked item by id. A missing id is reported but is
// not an error.
func (a *App) TrackRemove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("an item id is required")
	}

	items, closer, err := a.openTrackedItems(ctx)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	before, err := items.List(ctx)
	if err != nil {
		return err
	}

	after, err := items.Remove(ctx, id)
	if err != nil {
		return err
	}

	if len(after) == len(before) {
		fmt.Fprintf(os.Stdout, "no tracked item with id %s\n", id)
		return nil
	}

	a.Alerts.Success("Item removed from tracking.")
	fmt.Fprintf(os.Stdout, "tracking %d item(s)\n", len(after))
	return nil
}

func printTrackedItems(list []store.TrackedItem) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tEntity\tType\tDriver\tBaseline\tAdded")

	for _, item := range list {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID,
			item.EntityName,
			item.EntityType,
			item.Driver,
			format.Currency(item.BaselineValue),
			item.DateAdded,
		)
	}

	writer.Flush()
}

func trackedItemRecords(list []store.TrackedItem) []export.Record {
	records := make([]export.Record, 0, len(list))
	for _, item := range list {
		records = append(records, export.Record{
			{Key: "id", Value: item.ID},
			{Key: "entity_name", Value: item.EntityName},
			{Key: "entity_type", Value: item.EntityType},
			{Key: "entity_id", Value: item.EntityID},
			{Key: "driver", Value: item.Driver},
			{Key: "baseline_value", Value: item.BaselineValue},
			{Key: "baseline_date", Value: item.BaselineDate},
			{Key: "dateAdded", Value: item.DateAdded},
		})
	}
	return records
}
