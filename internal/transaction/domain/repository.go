package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is append-only: records are inserted and read, never updated.
type Repository interface {
	InsertSale(ctx context.Context, db *gorm.DB, sale *Sale) error
	InsertPurchase(ctx context.Context, db *gorm.DB, purchase *Purchase) error
	FindSaleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Sale, error)
	FindSalesByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Sale, error)
	ListSales(ctx context.Context, db *gorm.DB) ([]Sale, error)
	ListPurchases(ctx context.Context, db *gorm.DB) ([]Purchase, error)
}
