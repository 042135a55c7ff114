// Package domain contains persistence models for bills.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// BillStatus is the settlement state of a bill. Settlement is not
// tracked, so assembled bills stay pending.
type BillStatus string

const BillStatusPending BillStatus = "pending"

const DefaultPaymentMethod = "cash"

// Metadata keys holding the customer snapshot taken at assembly.
const (
	MetaCustomerName   = "customer_name"
	MetaCustomerMobile = "customer_mobile"
	MetaCustomerEmail  = "customer_email"
	MetaCustomerGSTNo  = "customer_gst_no"
)

// Bill aggregates sale records into a numbered tax invoice.
// Total excludes cess; cess stays folded into the item totals.
type Bill struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	Seq           int64             `gorm:"not null;uniqueIndex" json:"seq"`
	Number        string            `gorm:"type:varchar(64);not null;uniqueIndex" json:"number"`
	CustomerID    *snowflake.ID     `gorm:"index" json:"customer_id,omitempty"`
	Subtotal      decimal.Decimal   `gorm:"type:decimal(22,8);not null" json:"subtotal"`
	TotalGST      decimal.Decimal   `gorm:"column:total_gst;type:decimal(22,8);not null" json:"total_gst"`
	Total         decimal.Decimal   `gorm:"type:decimal(22,8);not null" json:"total"`
	PaymentMethod string            `gorm:"type:varchar(32);not null" json:"payment_method"`
	Status        BillStatus        `gorm:"type:varchar(16);not null" json:"status"`
	Metadata      datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null" json:"created_at"`

	Items []BillItem `gorm:"-" json:"items"`
}

// TableName sets the database table name.
func (Bill) TableName() string { return "bills" }

// CustomerName returns the snapshotted customer name, if any.
func (b Bill) CustomerName() string {
	return b.meta(MetaCustomerName)
}

func (b Bill) CustomerMobile() string {
	return b.meta(MetaCustomerMobile)
}

func (b Bill) CustomerEmail() string {
	return b.meta(MetaCustomerEmail)
}

func (b Bill) CustomerGSTNo() string {
	return b.meta(MetaCustomerGSTNo)
}

func (b Bill) meta(key string) string {
	if b.Metadata == nil {
		return ""
	}
	value, _ := b.Metadata[key].(string)
	return value
}

// BillItem is one sale line copied onto a bill.
type BillItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	BillID      snowflake.ID    `gorm:"not null;index" json:"bill_id"`
	SaleID      snowflake.ID    `gorm:"not null;index" json:"sale_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	HSNCode     *string         `gorm:"column:hsn_code;type:varchar(16)" json:"hsn_code,omitempty"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(22,8);not null" json:"subtotal"`
	GSTRate     decimal.Decimal `gorm:"column:gst_rate;type:decimal(6,2);not null" json:"gst_rate"`
	GSTAmount   decimal.Decimal `gorm:"column:gst_amount;type:decimal(22,8);not null" json:"gst_amount"`
	Cess        decimal.Decimal `gorm:"type:decimal(22,8);not null" json:"cess"`
	Total       decimal.Decimal `gorm:"type:decimal(22,8);not null" json:"total"`
}

// TableName sets the database table name.
func (BillItem) TableName() string { return "bill_items" }

// QRPayload is the JSON document encoded into bill QR codes.
type QRPayload struct {
	BillNo     string  `json:"bill_no"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	CompanyGST string  `json:"company_gst"`
}

const DateTimeLayout = "2006-01-02 15:04:05"

func NewQRPayload(b Bill, companyGST string) QRPayload {
	return QRPayload{
		BillNo:     b.Number,
		Date:       b.CreatedAt.Format(DateTimeLayout),
		Amount:     b.Total.Round(2).InexactFloat64(),
		CompanyGST: companyGST,
	}
}
