package service

import (
	"github.com/shopspring/decimal"
	taxdomain "github.com/smallbiznis/saletrack/internal/tax/domain"
)

var hundred = decimal.NewFromInt(100)

type engine struct{}

func New() taxdomain.Engine {
	return engine{}
}

func (engine) Compute(unitPrice decimal.Decimal, quantity int64, gstRate, cessRate decimal.Decimal) taxdomain.Breakdown {
	return Compute(unitPrice, quantity, gstRate, cessRate)
}

func (engine) ValidateGSTRate(rate decimal.Decimal) error {
	return ValidateGSTRate(rate)
}

func (engine) ValidateCessRate(rate decimal.Decimal) error {
	return ValidateCessRate(rate)
}

// Compute applies gst and cess percentages to unitPrice*quantity.
// No rounding is applied; presentation layers round for display.
func Compute(unitPrice decimal.Decimal, quantity int64, gstRate, cessRate decimal.Decimal) taxdomain.Breakdown {
	subtotal := unitPrice.Mul(decimal.NewFromInt(quantity))
	gst := subtotal.Mul(gstRate).Div(hundred)
	half := gst.Div(decimal.NewFromInt(2))
	cess := subtotal.Mul(cessRate).Div(hundred)

	return taxdomain.Breakdown{
		Subtotal:  subtotal,
		GSTAmount: gst,
		CGST:      half,
		SGST:      half,
		IGST:      gst,
		Cess:      cess,
		Total:     subtotal.Add(gst).Add(cess),
	}
}

func ValidateGSTRate(rate decimal.Decimal) error {
	if !taxdomain.IsAllowedGSTRate(rate) {
		return taxdomain.ErrInvalidGSTRate
	}
	return nil
}

func ValidateCessRate(rate decimal.Decimal) error {
	if rate.IsNegative() || !taxdomain.FitsScale(rate, taxdomain.RateScale) {
		return taxdomain.ErrInvalidCessRate
	}
	return nil
}
