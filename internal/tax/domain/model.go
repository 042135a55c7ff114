package domain

import "github.com/shopspring/decimal"

// GST slabs accepted at the intake boundary, in percent.
var AllowedGSTRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// Stored scales. Amounts derived from a price and a rate fit in
// AmountScale places.
const (
	PriceScale  = 4
	RateScale   = 2
	AmountScale = 8
)

// FitsScale reports whether v has at most places decimal digits.
func FitsScale(v decimal.Decimal, places int32) bool {
	return v.Equal(v.Truncate(places))
}

// Breakdown is the result of a single line-item tax computation.
// CGST/SGST and IGST are always populated together; callers decide
// which pair to present.
type Breakdown struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	GSTAmount decimal.Decimal `json:"gst_amount"`
	CGST      decimal.Decimal `json:"cgst"`
	SGST      decimal.Decimal `json:"sgst"`
	IGST      decimal.Decimal `json:"igst"`
	Cess      decimal.Decimal `json:"cess"`
	Total     decimal.Decimal `json:"total"`
}

// IsAllowedGSTRate reports whether rate is one of the GST slabs.
func IsAllowedGSTRate(rate decimal.Decimal) bool {
	for _, allowed := range AllowedGSTRates {
		if rate.Equal(allowed) {
			return true
		}
	}
	return false
}
