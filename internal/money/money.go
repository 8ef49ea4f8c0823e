package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Format renders an amount in minor units with digit grouping and at most
// two fractional digits, e.g. 1234.5 -> "1,234.5".
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

// FormatInt is Format for whole minor-unit amounts.
func FormatInt(amount int64) string {
	return Format(decimal.NewFromInt(amount))
}
