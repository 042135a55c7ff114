package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// MaxSeq returns the highest persisted bill sequence, or 0.
	MaxSeq(ctx context.Context, db *gorm.DB) (int64, error)
	Insert(ctx context.Context, db *gorm.DB, bill *Bill) error
	InsertItems(ctx context.Context, db *gorm.DB, items []BillItem) error
	FindByNumber(ctx context.Context, db *gorm.DB, number string) (*Bill, error)
	FindBySaleID(ctx context.Context, db *gorm.DB, saleID snowflake.ID) (*Bill, error)
	List(ctx context.Context, db *gorm.DB) ([]Bill, error)
	ListItems(ctx context.Context, db *gorm.DB, billID snowflake.ID) ([]BillItem, error)
}
