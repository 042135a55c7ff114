package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"type:varchar(255);not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(14,4);not null"`
	Quantity  int64           `json:"quantity" gorm:"not null;default:0"`
	MRP       decimal.Decimal `json:"mrp" gorm:"column:mrp;type:decimal(14,4);not null"`
	Barcode   *string         `json:"barcode,omitempty" gorm:"type:varchar(64);index"`
	Unit      *string         `json:"unit,omitempty" gorm:"type:varchar(32)"`
	Category  *string         `json:"category,omitempty" gorm:"type:varchar(128)"`
	HSNCode   *string         `json:"hsn_code,omitempty" gorm:"column:hsn_code;type:varchar(16)"`
	GSTRate   decimal.Decimal `json:"gst_rate" gorm:"column:gst_rate;type:decimal(6,2);not null"`
	CessRate  decimal.Decimal `json:"cess_rate" gorm:"column:cess_rate;type:decimal(6,2);not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null"`
}

func (Product) TableName() string { return "products" }

// StockValue is the on-hand quantity valued at the selling price.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}
