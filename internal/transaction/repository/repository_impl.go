package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/saletrack/internal/transaction/domain"
	"gorm.io/gorm"
)

const (
	lineColumns     = `id, product_id, product_name, hsn_code, quantity, unit_price, subtotal, cgst, sgst, igst, gst_amount, cess, total, gst_rate, cess_rate`
	saleColumns     = lineColumns + `, customer_id, created_at`
	purchaseColumns = lineColumns + `, created_at`
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertSale(ctx context.Context, db *gorm.DB, sale *domain.Sale) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sales (`+saleColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID,
		sale.ProductID,
		sale.ProductName,
		sale.HSNCode,
		sale.Quantity,
		sale.UnitPrice,
		sale.Subtotal,
		sale.CGST,
		sale.SGST,
		sale.IGST,
		sale.GSTAmount,
		sale.Cess,
		sale.Total,
		sale.GSTRate,
		sale.CessRate,
		sale.CustomerID,
		sale.CreatedAt,
	).Error
}

func (r *repo) InsertPurchase(ctx context.Context, db *gorm.DB, purchase *domain.Purchase) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO purchases (`+purchaseColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		purchase.ID,
		purchase.ProductID,
		purchase.ProductName,
		purchase.HSNCode,
		purchase.Quantity,
		purchase.UnitPrice,
		purchase.Subtotal,
		purchase.CGST,
		purchase.SGST,
		purchase.IGST,
		purchase.GSTAmount,
		purchase.Cess,
		purchase.Total,
		purchase.GSTRate,
		purchase.CessRate,
		purchase.CreatedAt,
	).Error
}

func (r *repo) FindSaleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Sale, error) {
	var sale domain.Sale
	err := db.WithContext(ctx).Raw(
		`SELECT `+saleColumns+` FROM sales WHERE id = ?`,
		id,
	).Scan(&sale).Error
	if err != nil {
		return nil, err
	}
	if sale.ID == 0 {
		return nil, nil
	}
	return &sale, nil
}

func (r *repo) FindSalesByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Sale, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []domain.Sale
	err := db.WithContext(ctx).Raw(
		`SELECT `+saleColumns+` FROM sales WHERE id IN ? ORDER BY id ASC`,
		ids,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListSales(ctx context.Context, db *gorm.DB) ([]domain.Sale, error) {
	var items []domain.Sale
	err := db.WithContext(ctx).Raw(
		`SELECT ` + saleColumns + ` FROM sales ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListPurchases(ctx context.Context, db *gorm.DB) ([]domain.Purchase, error) {
	var items []domain.Purchase
	err := db.WithContext(ctx).Raw(
		`SELECT ` + purchaseColumns + ` FROM purchases ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
