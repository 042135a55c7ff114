package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Sale is an immutable record of stock leaving the shop. Product name,
// HSN code and rates are snapshotted at the time of sale.
type Sale struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	ProductID   snowflake.ID    `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	HSNCode     *string         `gorm:"column:hsn_code;type:varchar(16)" json:"hsn_code,omitempty"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(22,8);not null" json:"subtotal"`
	CGST        decimal.Decimal `gorm:"column:cgst;type:decimal(22,8);not null" json:"cgst"`
	SGST        decimal.Decimal `gorm:"column:sgst;type:decimal(22,8);not null" json:"sgst"`
	IGST        decimal.Decimal `gorm:"column:igst;type:decimal(22,8);not null" json:"igst"`
	GSTAmount   decimal.Decimal `gorm:"column:gst_amount;type:decimal(22,8);not null" json:"gst_amount"`
	Cess        decimal.Decimal `gorm:"type:decimal(22,8);not null" json:"cess"`
	Total       decimal.Decimal `gorm:"type:decimal(22,8);not null" json:"total"`
	GSTRate     decimal.Decimal `gorm:"column:gst_rate;type:decimal(6,2);not null" json:"gst_rate"`
	CessRate    decimal.Decimal `gorm:"column:cess_rate;type:decimal(6,2);not null" json:"cess_rate"`
	CustomerID  *snowflake.ID   `gorm:"index" json:"customer_id,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}

func (Sale) TableName() string { return "sales" }

// Purchase is an immutable record of stock received from a supplier.
type Purchase struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	ProductID   snowflake.ID    `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	HSNCode     *string         `gorm:"column:hsn_code;type:varchar(16)" json:"hsn_code,omitempty"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(22,8);not null" json:"subtotal"`
	CGST        decimal.Decimal `gorm:"column:cgst;type:decimal(22,8);not null" json:"cgst"`
	SGST        decimal.Decimal `gorm:"column:sgst;type:decimal(22,8);not null" json:"sgst"`
	IGST        decimal.Decimal `gorm:"column:igst;type:decimal(22,8);not null" json:"igst"`
	GSTAmount   decimal.Decimal `gorm:"column:gst_amount;type:decimal(22,8);not null" json:"gst_amount"`
	Cess        decimal.Decimal `gorm:"type:decimal(22,8);not null" json:"cess"`
	Total       decimal.Decimal `gorm:"type:decimal(22,8);not null" json:"total"`
	GSTRate     decimal.Decimal `gorm:"column:gst_rate;type:decimal(6,2);not null" json:"gst_rate"`
	CessRate    decimal.Decimal `gorm:"column:cess_rate;type:decimal(6,2);not null" json:"cess_rate"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}

func (Purchase) TableName() string { return "purchases" }
