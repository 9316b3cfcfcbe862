package period

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 14, 30, 0, 0, time.UTC)
}

func TestForRanges(t *testing.T) {
	now := date(2024, time.March, 15)

	cases := []struct {
		period Period
		start  string
	}{
		{MTD, "2024-03-01"},
		{QTD, "2024-01-01"},
		{YTD, "2024-01-01"},
		{LastMonth, "2024-02-01"},
		{Period("all_time"), "2023-03-15"},
		{Period(""), "2023-03-15"},
	}

	for _, tc := range cases {
		got := For(tc.period, now)
		if got.StartDate != tc.start {
			t.Fatalf("For(%q) start = %q, want %q", tc.period, got.StartDate, tc.start)
		}
		if got.EndDate != "2024-03-15" {
			t.Fatalf("For(%q) end = %q, want today", tc.period, got.EndDate)
		}
	}
}

func TestForQuarterBoundaries(t *testing.T) {
	cases := []struct {
		now   time.Time
		start string
	}{
		{date(2024, time.January, 2), "2024-01-01"},
		{date(2024, time.June, 30), "2024-04-01"},
		{date(2024, time.September, 1), "2024-07-01"},
		{date(2024, time.December, 31), "2024-10-01"},
	}
	for _, tc := range cases {
		if got := For(QTD, tc.now); got.StartDate != tc.start {
			t.Fatalf("QTD at %s start = %q, want %q", tc.now.Format(time.DateOnly), got.StartDate, tc.start)
		}
	}
}

func TestForLastMonthAcrossYear(t *testing.T) {
	got := For(LastMonth, date(2024, time.January, 10))
	if got.StartDate != "2023-12-01" {
		t.Fatalf("last_month in January start = %q, want 2023-12-01", got.StartDate)
	}
}

func TestQuarter(t *testing.T) {
	if q := Quarter(date(2024, time.March, 31)); q != 1 {
		t.Fatalf("March is Q1, got %d", q)
	}
	if q := Quarter(date(2024, time.October, 1)); q != 4 {
		t.Fatalf("October is Q4, got %d", q)
	}
}
