package chart

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kmf229/op-net-rate/internal/decomp"
)

func testSegments() []decomp.Segment {
	d := decomp.Decomposition{
		StartNetRate: decimal.NewFromFloat(98.50),
		EndNetRate:   decimal.NewFromFloat(95.10),
		Drivers: decomp.Drivers{
			PayerMix:            decimal.NewFromFloat(-1.20),
			AllowedRates:        decimal.NewFromFloat(0.80),
			UnitsPerVisit:       decimal.NewFromFloat(-0.50),
			CPTMix:              decimal.NewFromFloat(0.30),
			CopayLeakage:        decimal.NewFromFloat(-0.90),
			WriteoffsDenials:    decimal.NewFromFloat(-1.40),
			OperationalLeakage:  decimal.NewFromFloat(-0.30),
			DocumentationIssues: decimal.NewFromFloat(-0.20),
		},
	}
	return d.Segments()
}

func TestWaterfallBars(t *testing.T) {
	graph, err := Waterfall(testSegments(), Options{Title: "Net Rate"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(graph.Bars) != 10 {
		t.Fatalf("expected 10 bars, got %d", len(graph.Bars))
	}

	// Every bar stacks to the same total so normalisation preserves scale.
	total := func(bar int) float64 {
		var sum float64
		for _, v := range graph.Bars[bar].Values {
			sum += v.Value
		}
		return sum
	}
	first := total(0)
	for i := range graph.Bars {
		if diff := total(i) - first; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("bar %d total %f differs from %f", i, total(i), first)
		}
	}
}

func TestWaterfallLabels(t *testing.T) {
	graph, err := Waterfall(testSegments(), Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if got := graph.Bars[0].Values[1].Label; got != "$98.50" {
		t.Fatalf("anchor label should be the absolute rate, got %q", got)
	}
	if got := graph.Bars[1].Values[1].Label; got != "-$1.20" {
		t.Fatalf("driver label should be the signed delta, got %q", got)
	}
	if got := graph.Bars[2].Values[1].Label; got != "+$0.80" {
		t.Fatalf("driver label should be the signed delta, got %q", got)
	}
}

func TestWaterfallEmpty(t *testing.T) {
	if _, err := Waterfall(nil, Options{}); err == nil {
		t.Fatal("empty segments should error")
	}
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(testSegments(), Options{Width: 800, Height: 450, Title: "Net Rate Decomposition"}, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if buf.Len() < len(pngMagic) || !bytes.Equal(buf.Bytes()[:4], pngMagic) {
		t.Fatalf("output does not look like a PNG (%d bytes)", buf.Len())
	}
}
