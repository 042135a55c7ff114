package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	FindByMobile(ctx context.Context, db *gorm.DB, mobile string) (*Customer, error)
	FindByGSTNo(ctx context.Context, db *gorm.DB, gstNo string) (*Customer, error)
	List(ctx context.Context, db *gorm.DB) ([]*Customer, error)
	// AddPurchase accumulates amount into total_purchases and stamps
	// last_purchase_at. Callers serialize it inside their transaction;
	// only the sale recorder calls it.
	AddPurchase(ctx context.Context, db *gorm.DB, id snowflake.ID, amount decimal.Decimal, at time.Time) error
}
