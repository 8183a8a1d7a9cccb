package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price for display. With a known exchange precision
// (precision >= 0) the value is fixed-point with thousands separators.
// Otherwise formatting follows magnitude: large prices get two places and
// separators, mid-range up to four places, sub-unit prices up to eight,
// both trimmed of trailing zeros.
func FormatPrice(v decimal.Decimal, precision int) string {
	f, _ := v.Float64()
	if precision >= 0 {
		return pricePrinter.Sprintf("%.*f", precision, f)
	}
	switch {
	case v.IsZero():
		return "0"
	case f >= 1000:
		return pricePrinter.Sprintf("%.2f", f)
	case f >= 1:
		return trimZeros(fmt.Sprintf("%.4f", f))
	default:
		return trimZeros(fmt.Sprintf("%.8f", f))
	}
}

func trimZeros(s string) string {
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// signedFixed renders a decimal with a fixed number of places and an
// explicit sign, "+" included for zero and positive values.
func signedFixed(v decimal.Decimal, places int32) string {
	s := v.StringFixed(places)
	if v.Sign() >= 0 {
		return "+" + s
	}
	return s
}
