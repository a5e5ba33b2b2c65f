package formatting

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah форматирует сумму по-индонезийски: Rp50.000, Rp1.250,5
func FormatRupiah(amount decimal.Decimal) string {
	return "Rp" + printer.Sprint(number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(3)))
}

// FormatHours форматирует длительность в часах: 1,5 jam
func FormatHours(hours float64) string {
	return printer.Sprint(number.Decimal(hours, number.MaxFractionDigits(2))) + " jam"
}
