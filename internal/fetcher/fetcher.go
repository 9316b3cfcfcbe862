package fetcher

import (
	"context"

	"github.com/kmf229/op-net-rate/internal/decomp"
)

// WaterfallFetcher retrieves the net-rate variance decomposition.
type WaterfallFetcher interface {
	Waterfall(ctx context.Context, q WaterfallQuery) (decomp.Decomposition, error)
}

// DrillDownFetcher retrieves per-entity detail behind one driver.
type DrillDownFetcher interface {
	DrillDown(ctx context.Context, q DrillDownQuery) ([]DrillDownRow, error)
}

// RegionFetcher lists the regions available for filtering.
type RegionFetcher interface {
	Regions(ctx context.Context) ([]Region, error)
}
