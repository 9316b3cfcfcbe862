package decomp

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrAnchorStage indicates a drill-down request against the start or end bar,
// which have no underlying driver.
var ErrAnchorStage = errors.New("decomp: stage has no drill-down driver")

// Stage pairs a driver's API key with its display label.
type Stage struct {
	Key   string
	Label string
}

// DriverStages is the canonical ordered driver table. Segment construction,
// labelling, and drill-down dispatch all consult this single table.
var DriverStages = [8]Stage{
	{Key: "payer_mix", Label: "Payer Mix"},
	{Key: "allowed_rates", Label: "Allowed Rates"},
	{Key: "units_per_visit", Label: "Units per Visit"},
	{Key: "cpt_mix", Label: "CPT Mix"},
	{Key: "copay_leakage", Label: "Copay Leakage"},
	{Key: "writeoffs_denials", Label: "Write-offs & Denials"},
	{Key: "operational_leakage", Label: "Operational Leakage"},
	{Key: "documentation_issues", Label: "Documentation Issues"},
}

const (
	startLabel = "Start Net Rate"
	endLabel   = "End Net Rate"
)

// DriverByKey resolves a canonical driver key to its stage.
func DriverByKey(key string) (Stage, bool) {
	for _, stage := range DriverStages {
		if stage.Key == key {
			return stage, true
		}
	}
	return Stage{}, false
}

// Drivers holds the eight contribution values of a decomposition.
type Drivers struct {
	PayerMix            decimal.Decimal `json:"payer_mix"`
	AllowedRates        decimal.Decimal `json:"allowed_rates"`
	UnitsPerVisit       decimal.Decimal `json:"units_per_visit"`
	CPTMix              decimal.Decimal `json:"cpt_mix"`
	CopayLeakage        decimal.Decimal `json:"copay_leakage"`
	WriteoffsDenials    decimal.Decimal `json:"writeoffs_denials"`
	OperationalLeakage  decimal.Decimal `json:"operational_leakage"`
	DocumentationIssues decimal.Decimal `json:"documentation_issues"`
}

// Values returns the driver values in canonical stage order.
func (d Drivers) Values() [8]decimal.Decimal {
	return [8]decimal.Decimal{
		d.PayerMix,
		d.AllowedRates,
		d.UnitsPerVisit,
		d.CPTMix,
		d.CopayLeakage,
		d.WriteoffsDenials,
		d.OperationalLeakage,
		d.DocumentationIssues,
	}
}

// PeriodMetrics carries the aggregate figures behind one comparison period.
type PeriodMetrics struct {
	TotalVisits         int64           `json:"total_visits"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	AvgNetRate          decimal.Decimal `json:"avg_net_rate"`
	TotalUnits          int64           `json:"total_units"`
	TotalCopayCollected decimal.Decimal `json:"total_copay_collected"`
	TotalCopayExpected  decimal.Decimal `json:"total_copay_expected"`
	TotalWriteoffs      decimal.Decimal `json:"total_writeoffs"`
}

// Decomposition is the net-rate variance breakdown returned by the
// /api/waterfall endpoint. Upstream guarantees the drivers sum to the
// change between the two anchor rates.
type Decomposition struct {
	StartNetRate decimal.Decimal `json:"start_net_rate"`
	EndNetRate   decimal.Decimal `json:"end_net_rate"`
	TotalChange  decimal.Decimal `json:"total_change"`
	Drivers      Drivers         `json:"drivers"`
	StartMetrics *PeriodMetrics  `json:"start_metrics,omitempty"`
	EndMetrics   *PeriodMetrics  `json:"end_metrics,omitempty"`
}

// Kind classifies a waterfall bar.
type Kind string

const (
	KindAnchor   Kind = "anchor"
	KindIncrease Kind = "increase"
	KindDecrease Kind = "decrease"
)

// Segment is one waterfall bar. Anchor bars span from zero to their rate;
// driver bars span from the prior cumulative value to the new one.
type Segment struct {
	Index int
	Label string
	From  decimal.Decimal
	To    decimal.Decimal
	Delta decimal.Decimal
	Kind  Kind
}

// Low returns the lesser end of the bar's value range.
func (s Segment) Low() decimal.Decimal {
	if s.From.LessThan(s.To) {
		return s.From
	}
	return s.To
}

// High returns the greater end of the bar's value range.
func (s Segment) High() decimal.Decimal {
	if s.From.GreaterThan(s.To) {
		return s.From
	}
	return s.To
}

// Value is what a tooltip reports for the bar: the delta for driver bars,
// the absolute rate for anchors.
func (s Segment) Value() decimal.Decimal {
	if s.Kind == KindAnchor {
		return s.To
	}
	return s.Delta
}

// Driver returns the stage behind a driver bar. Anchor bars (index 0 and 9)
// return ErrAnchorStage.
func (s Segment) Driver() (Stage, error) {
	if s.Kind == KindAnchor {
		return Stage{}, ErrAnchorStage
	}
	return DriverStages[s.Index-1], nil
}

// Segments derives the ten waterfall bars. The slice is recomputed on every
// call; callers own the result.
func (d Decomposition) Segments() []Segment {
	segments := make([]Segment, 0, len(DriverStages)+2)

	segments = append(segments, Segment{
		Index: 0,
		Label: startLabel,
		From:  decimal.Zero,
		To:    d.StartNetRate,
		Delta: d.StartNetRate,
		Kind:  KindAnchor,
	})

	cumulative := d.StartNetRate
	for i, value := range d.Drivers.Values() {
		next := cumulative.Add(value)
		kind := KindIncrease
		if value.IsNegative() {
			kind = KindDecrease
		}
		segments = append(segments, Segment{
			Index: i + 1,
			Label: DriverStages[i].Label,
			From:  cumulative,
			To:    next,
			Delta: value,
			Kind:  kind,
		})
		cumulative = next
	}

	// The end bar is anchored at zero rather than at the running cumulative,
	// matching the start bar's visual convention.
	segments = append(segments, Segment{
		Index: len(DriverStages) + 1,
		Label: endLabel,
		From:  decimal.Zero,
		To:    d.EndNetRate,
		Delta: d.EndNetRate.Sub(d.StartNetRate),
		Kind:  KindAnchor,
	})

	return segments
}

// Check returns the residual between the reported end rate and the start rate
// plus all driver contributions. A non-trivial residual means the upstream
// decomposition does not add up.
func (d Decomposition) Check() decimal.Decimal {
	sum := d.StartNetRate
	for _, value := range d.Drivers.Values() {
		sum = sum.Add(value)
	}
	return d.EndNetRate.Sub(sum)
}

// DrillDownPath builds the drill-down location for a driver bar, keyed by the
// driver's canonical name. Anchor indices are inert.
func DrillDownPath(index int) (string, error) {
	if index <= 0 || index > len(DriverStages) {
		return "", fmt.Errorf("%w: index %d", ErrAnchorStage, index)
	}
	return "/drill-down/" + DriverStages[index-1].Key, nil
}
