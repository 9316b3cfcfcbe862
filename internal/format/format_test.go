package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1234.5, "$1,234.50"},
		{0, "$0.00"},
		{98.5, "$98.50"},
		{1000000, "$1,000,000.00"},
	}
	for _, tc := range cases {
		if got := Currency(decimal.NewFromFloat(tc.in)); got != tc.want {
			t.Fatalf("Currency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNumber(t *testing.T) {
	if got := Number(decimal.NewFromFloat(12345.25)); got != "12,345.25" {
		t.Fatalf("Number = %q", got)
	}
	if got := Number(decimal.NewFromInt(42)); got != "42" {
		t.Fatalf("Number = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(decimal.NewFromFloat(12.3)); got != "12.3%" {
		t.Fatalf("Percent(12.3) = %q, want \"12.3%%\"", got)
	}
	if got := Percent(decimal.NewFromInt(100)); got != "100.0%" {
		t.Fatalf("Percent(100) = %q", got)
	}
}

func TestSignedCurrency(t *testing.T) {
	if got := SignedCurrency(decimal.NewFromFloat(-1.2)); got != "-$1.20" {
		t.Fatalf("SignedCurrency(-1.2) = %q", got)
	}
	if got := SignedCurrency(decimal.NewFromFloat(0.8)); got != "+$0.80" {
		t.Fatalf("SignedCurrency(0.8) = %q", got)
	}
	if got := SignedCurrency(decimal.Zero); got != "+$0.00" {
		t.Fatalf("SignedCurrency(0) = %q", got)
	}
}
