package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Customer struct {
	ID             snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Mobile         string          `gorm:"type:varchar(32);not null;index" json:"mobile"`
	Email          *string         `gorm:"type:varchar(255)" json:"email,omitempty"`
	GSTNo          *string         `gorm:"column:gst_no;type:varchar(32);index" json:"gst_no,omitempty"`
	TotalPurchases decimal.Decimal `gorm:"type:decimal(22,8);not null;default:0" json:"total_purchases"`
	LastPurchaseAt *time.Time      `json:"last_purchase_at,omitempty"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
