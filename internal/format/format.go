// Package format renders dashboard figures the way the en-US locale expects:
// grouped digits, USD currency with cents, percentage-point percents.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency renders a USD amount with digit grouping and exactly two fraction
// digits, e.g. "$1,234.50".
func Currency(v decimal.Decimal) string {
	return printer.Sprintf("$%v", number.Decimal(v.InexactFloat64(),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// Number renders a grouped decimal with the locale's default fraction digits.
func Number(v decimal.Decimal) string {
	return printer.Sprintf("%v", number.Decimal(v.InexactFloat64()))
}

// Percent renders a percentage-point value (12.3 meaning 12.3%) with exactly
// one fraction digit.
func Percent(v decimal.Decimal) string {
	points := v.Div(decimal.NewFromInt(100))
	return printer.Sprintf("%v", number.Percent(points.InexactFloat64(),
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1),
	))
}

// SignedCurrency renders a delta with an explicit sign, e.g. "+$0.80" or
// "-$1.20", for waterfall bar labels.
func SignedCurrency(v decimal.Decimal) string {
	if v.IsNegative() {
		return "-" + Currency(v.Neg())
	}
	return "+" + Currency(v)
}
