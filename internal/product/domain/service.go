package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	taxdomain "github.com/smallbiznis/saletrack/internal/tax/domain"
)

type Service interface {
	Create(ctx context.Context, req Attributes) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	GetByBarcode(ctx context.Context, barcode string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
}

// Attributes are the mutable fields of a product.
type Attributes struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	MRP      decimal.Decimal `json:"mrp"`
	Barcode  *string         `json:"barcode"`
	Unit     *string         `json:"unit"`
	Category *string         `json:"category"`
	HSNCode  *string         `json:"hsn_code"`
	GSTRate  decimal.Decimal `json:"gst_rate"`
	CessRate decimal.Decimal `json:"cess_rate"`
}

type UpdateRequest struct {
	ID string `json:"-"`
	Attributes
}

type Response struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	MRP       decimal.Decimal `json:"mrp"`
	Barcode   *string         `json:"barcode,omitempty"`
	Unit      *string         `json:"unit,omitempty"`
	Category  *string         `json:"category,omitempty"`
	HSNCode   *string         `json:"hsn_code,omitempty"`
	GSTRate   decimal.Decimal `json:"gst_rate"`
	CessRate  decimal.Decimal `json:"cess_rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrInvalidMRP      = errors.New("invalid_mrp")
	ErrInvalidGSTRate  = taxdomain.ErrInvalidGSTRate
	ErrInvalidCessRate = taxdomain.ErrInvalidCessRate
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)

// Normalize trims text fields and drops empty optional values.
func (a Attributes) Normalize() Attributes {
	a.Name = strings.TrimSpace(a.Name)
	a.Barcode = trimOptional(a.Barcode)
	a.Unit = trimOptional(a.Unit)
	a.Category = trimOptional(a.Category)
	a.HSNCode = trimOptional(a.HSNCode)
	return a
}

// Validate enforces the intake rules for catalog entries.
func (a Attributes) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrInvalidName
	}
	if !a.Price.IsPositive() || !taxdomain.FitsScale(a.Price, taxdomain.PriceScale) {
		return ErrInvalidPrice
	}
	if a.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if a.MRP.IsNegative() || !taxdomain.FitsScale(a.MRP, taxdomain.PriceScale) {
		return ErrInvalidMRP
	}
	if !taxdomain.IsAllowedGSTRate(a.GSTRate) {
		return ErrInvalidGSTRate
	}
	if a.CessRate.IsNegative() || !taxdomain.FitsScale(a.CessRate, taxdomain.RateScale) {
		return ErrInvalidCessRate
	}
	return nil
}

// Apply copies the attributes onto p.
func (a Attributes) Apply(p *Product) {
	p.Name = a.Name
	p.Price = a.Price
	p.Quantity = a.Quantity
	p.MRP = a.MRP
	p.Barcode = a.Barcode
	p.Unit = a.Unit
	p.Category = a.Category
	p.HSNCode = a.HSNCode
	p.GSTRate = a.GSTRate
	p.CessRate = a.CessRate
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
