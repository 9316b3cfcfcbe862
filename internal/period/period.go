// Package period computes the reporting date windows the dashboard offers.
package period

import "time"

// Period names a reporting window. Anything unrecognised falls back to the
// trailing-year comparison.
type Period string

const (
	MTD       Period = "mtd"
	QTD       Period = "qtd"
	YTD       Period = "ytd"
	LastMonth Period = "last_month"
)

// Range is an inclusive ISO date pair. The end date is always the given
// day; only the start varies by period.
type Range struct {
	StartDate string
	EndDate   string
}

// For computes the range for a period as observed at now, using now's
// location. No timezone normalisation is applied.
func For(p Period, now time.Time) Range {
	year, month, day := now.Date()
	loc := now.Location()

	var start time.Time
	switch p {
	case MTD:
		start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	case QTD:
		quarterStart := time.Month((Quarter(now)-1)*3 + 1)
		start = time.Date(year, quarterStart, 1, 0, 0, 0, 0, loc)
	case YTD:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	case LastMonth:
		// time.Date normalises month 0 to December of the prior year.
		start = time.Date(year, month-1, 1, 0, 0, 0, 0, loc)
	default:
		start = time.Date(year-1, month, day, 0, 0, 0, 0, loc)
	}

	return Range{
		StartDate: start.Format(time.DateOnly),
		EndDate:   now.Format(time.DateOnly),
	}
}

// Quarter returns the 1-based calendar quarter of a date.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}
