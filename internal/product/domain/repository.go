package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindByBarcode(ctx context.Context, db *gorm.DB, barcode string) (*Product, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)
	// AdjustQuantity adds delta to the on-hand quantity. It returns
	// ErrNotFound when no row matches id.
	AdjustQuantity(ctx context.Context, db *gorm.DB, id int64, delta int64) error
}
