package domain

import "github.com/shopspring/decimal"

// Engine computes GST and cess for a line item.
type Engine interface {
	Compute(unitPrice decimal.Decimal, quantity int64, gstRate, cessRate decimal.Decimal) Breakdown
	ValidateGSTRate(rate decimal.Decimal) error
	ValidateCessRate(rate decimal.Decimal) error
}
