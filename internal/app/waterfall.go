package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmf229/op-net-rate/internal/chart"
	"github.com/kmf229/op-net-rate/internal/decomp"
	"github.com/kmf229/op-net-rate/internal/export"
	"github.com/kmf229/op-net-rate/internal/fetcher"
	"github.com/kmf229/op-net-rate/internal/format"
	"github.com/kmf229/op-net-rate/internal/period"
)

// residualTolerance bounds the acceptable gap between the reported end rate
// and start plus drivers before a data-quality warning is logged.
var residualTolerance = decimal.NewFromFloat(0.001)

// WaterfallOptions configure the waterfall command.
type WaterfallOptions struct {
	Period    string
	Month     int
	Year      int
	RegionID  string
	InputPath string
	PNGPath   string
	CSVPath   string
}

// Waterfall fetches (or reads) a decomposition, prints the stage table, and
// optionally writes PNG and CSV renderings.
func (a *App) Waterfall(ctx context.Context, opts WaterfallOptions) error {
	p := strings.ToLower(opts.Period)
	if p == "" {
		p = "mtd"
	}
	viewType, err := normalizePeriod(p)
	if err != nil {
		return err
	}

	a.Alerts.SetLoading("waterfall", true)
	defer a.Alerts.SetLoading("waterfall", false)

	now := time.Now()
	if opts.Month <= 0 {
		opts.Month = int(now.Month())
	}
	if opts.Year <= 0 {
		opts.Year = now.Year()
	}

	var d decomp.Decomposition
	if opts.InputPath != "" {
		d, err = readDecomposition(opts.InputPath)
	} else {
		d, err = a.newClient().Waterfall(ctx, fetcher.WaterfallQuery{
			ViewType: viewType,
			Month:    opts.Month,
			Year:     opts.Year,
			RegionID: opts.RegionID,
		})
	}
	if err != nil {
		return err
	}

	if residual := d.Check(); residual.Abs().GreaterThan(residualTolerance) {
		a.Logger.Warn().
			Str("residual", residual.String()).
			Msg("drivers do not sum to the net rate change; upstream data may be inconsistent")
	}

	window := period.For(period.Period(p), now)
	fmt.Fprintf(os.Stdout, "Net rate decomposition (%s, %s to %s)\n\n", viewType, window.StartDate, window.EndDate)

	segments := d.Segments()
	printSegments(segments)

	if opts.PNGPath != "" {
		if err := writeWaterfallPNG(opts.PNGPath, segments, chart.Options{
			Title:    fmt.Sprintf("Net Rate Decomposition (%s)", viewType),
			Width:    a.Config.Chart.Width,
			Height:   a.Config.Chart.Height,
			BarWidth: a.Config.Chart.BarWidth,
		}); err != nil {
			return err
		}
		a.Alerts.Success("Chart exported.")
	}

	if opts.CSVPath != "" {
		if err := export.WriteFile(opts.CSVPath, segmentRecords(segments)); err != nil {
			return err
		}
		a.Alerts.Success("Export complete.")
	}

	return nil
}

func normalizePeriod(p string) (string, error) {
	switch strings.ToLower(p) {
	case "", "mtd":
		return "MTD", nil
	case "qtd":
		return "QTD", nil
	case "ytd":
		return "YTD", nil
	default:
		return "", fmt.Errorf("unsupported period %q (want mtd, qtd, or ytd)", p)
	}
}

func readDecomposition(path string) (decomp.Decomposition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return decomp.Decomposition{}, fmt.Errorf("read input: %w", err)
	}
	var d decomp.Decomposition
	if err := json.Unmarshal(data, &d); err != nil {
		return decomp.Decomposition{}, fmt.Errorf("decode input: %w", err)
	}
	return d, nil
}

func printSegments(segments []decomp.Segment) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Stage\tRange\tValue\tEffect")

	for _, seg := range segments {
		value := format.Currency(seg.Value())
		if seg.Kind != decomp.KindAnchor {
			value = format.SignedCurrency(seg.Value())
		}
		fmt.Fprintf(
			writer,
			"%s\t%s - %s\t%s\t%s\n",
			seg.Label,
			format.Currency(seg.Low()),
			format.Currency(seg.High()),
			value,
			seg.Kind,
		)
	}

	writer.Flush()
}

func writeWaterfallPNG(path string, segments []decomp.Segment, opts chart.Options) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return chart.Render(segments, opts, file)
}

func segmentRecords(segments []decomp.Segment) []export.Record {
	records := make([]export.Record, 0, len(segments))
	for _, seg := range segments {
		records = append(records, export.Record{
			{Key: "stage", Value: seg.Label},
			{Key: "from", Value: seg.From},
			{Key: "to", Value: seg.To},
			{Key: "delta", Value: seg.Delta},
			{Key: "effect", Value: string(seg.Kind)},
		})
	}
	return records
}
