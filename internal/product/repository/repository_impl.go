package repository

import (
	"context"

	"github.com/smallbiznis/saletrack/internal/product/domain"
	"gorm.io/gorm"
)

const productColumns = `id, name, price, quantity, mrp, barcode, unit, category, hsn_code, gst_rate, cess_rate, created_at, updated_at`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (`+productColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.Name,
		product.Price,
		product.Quantity,
		product.MRP,
		product.Barcode,
		product.Unit,
		product.Category,
		product.HSNCode,
		product.GSTRate,
		product.CessRate,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, price = ?, quantity = ?, mrp = ?, barcode = ?, unit = ?, category = ?,
		     hsn_code = ?, gst_rate = ?, cess_rate = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name,
		product.Price,
		product.Quantity,
		product.MRP,
		product.Barcode,
		product.Unit,
		product.Category,
		product.HSNCode,
		product.GSTRate,
		product.CessRate,
		product.UpdatedAt,
		product.ID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT `+productColumns+` FROM products WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindByBarcode(ctx context.Context, db *gorm.DB, barcode string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT `+productColumns+` FROM products WHERE barcode = ? ORDER BY id ASC LIMIT 1`,
		barcode,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT ` + productColumns + ` FROM products ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) AdjustQuantity(ctx context.Context, db *gorm.DB, id int64, delta int64) error {
	result := db.WithContext(ctx).Exec(
		`UPDATE products SET quantity = quantity + ? WHERE id = ?`,
		delta,
		id,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
