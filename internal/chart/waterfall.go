// Package chart renders the net-rate waterfall as a PNG. Floating bars are
// emulated with stacked segments: a transparent base lifts each colored span
// to its cumulative position, and transparent headroom pads every bar to a
// common scale so heights stay proportional after per-bar normalisation.
package chart

import (
	"errors"
	"io"

	"github.com/shopspring/decimal"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kmf229/op-net-rate/internal/decomp"
	"github.com/kmf229/op-net-rate/internal/format"
)

// Options tune waterfall rendering.
type Options struct {
	Title    string
	Width    int
	Height   int
	BarWidth int
}

var (
	colorAnchor   = drawing.Color{R: 0x44, G: 0x72, B: 0xc4, A: 255}
	colorIncrease = drawing.Color{R: 0x2e, G: 0x7d, B: 0x32, A: 255}
	colorDecrease = drawing.Color{R: 0xc6, G: 0x2a, B: 0x2a, A: 255}
)

func segmentColor(kind decomp.Kind) drawing.Color {
	switch kind {
	case decomp.KindIncrease:
		return colorIncrease
	case decomp.KindDecrease:
		return colorDecrease
	default:
		return colorAnchor
	}
}

func segmentLabel(s decomp.Segment) string {
	if s.Kind == decomp.KindAnchor {
		return format.Currency(s.Value())
	}
	return format.SignedCurrency(s.Value())
}

// Waterfall builds the stacked-bar chart for a segment sequence. The chart
// is a plain value; the caller owns it and the writer it renders to.
func Waterfall(segments []decomp.Segment, opts Options) (chart.StackedBarChart, error) {
	if len(segments) == 0 {
		return chart.StackedBarChart{}, errors.New("chart: no segments to render")
	}

	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.BarWidth <= 0 {
		opts.BarWidth = 80
	}

	axisMin, axisMax := axisBounds(segments)

	transparent := chart.Style{
		FillColor:   drawing.ColorTransparent,
		StrokeColor: drawing.ColorTransparent,
	}

	bars := make([]chart.StackedBar, 0, len(segments))
	for _, seg := range segments {
		color := segmentColor(seg.Kind)
		base := seg.Low().Sub(axisMin)
		height := seg.High().Sub(seg.Low())
		head := axisMax.Sub(seg.High())

		bars = append(bars, chart.StackedBar{
			Name:  seg.Label,
			Width: opts.BarWidth,
			Values: []chart.Value{
				{Value: base.InexactFloat64(), Style: transparent},
				{
					Value: height.InexactFloat64(),
					Label: segmentLabel(seg),
					Style: chart.Style{
						FillColor:   color,
						StrokeColor: color,
						StrokeWidth: 1,
						FontColor:   drawing.ColorWhite,
					},
				},
				{Value: head.InexactFloat64(), Style: transparent},
			},
		})
	}

	graph := chart.StackedBarChart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarSpacing: 20,
		// Bars are normalised per column, so the shared y scale carries no
		// readable unit; value labels on the bars stand in for it.
		YAxis: chart.Style{Hidden: true},
		Bars:  bars,
	}

	return graph, nil
}

// Render writes the waterfall PNG to w.
func Render(segments []decomp.Segment, opts Options, w io.Writer) error {
	graph, err := Waterfall(segments, opts)
	if err != nil {
		return err
	}
	return graph.Render(chart.PNG, w)
}

// axisBounds returns the shared value scale: zero (or the lowest negative
// excursion) up to the highest bar top plus ten percent headroom.
func axisBounds(segments []decomp.Segment) (decimal.Decimal, decimal.Decimal) {
	low := decimal.Zero
	high := decimal.Zero
	for _, seg := range segments {
		if seg.Low().LessThan(low) {
			low = seg.Low()
		}
		if seg.High().GreaterThan(high) {
			high = seg.High()
		}
	}

	pad := high.Sub(low).Mul(decimal.NewFromFloat(0.1))
	if pad.IsZero() {
		pad = decimal.NewFromInt(1)
	}
	return low, high.Add(pad)
}
