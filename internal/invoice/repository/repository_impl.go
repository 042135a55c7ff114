package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/saletrack/internal/invoice/domain"
	"gorm.io/gorm"
)

const (
	billColumns     = `id, seq, number, customer_id, subtotal, total_gst, total, payment_method, status, metadata, created_at`
	billItemColumns = `id, bill_id, sale_id, product_name, hsn_code, quantity, unit_price, subtotal, gst_rate, gst_amount, cess, total`
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) MaxSeq(ctx context.Context, db *gorm.DB) (int64, error) {
	var seq int64
	err := db.WithContext(ctx).Raw(`SELECT COALESCE(MAX(seq), 0) FROM bills`).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, bill *domain.Bill) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO bills (`+billColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID,
		bill.Seq,
		bill.Number,
		bill.CustomerID,
		bill.Subtotal,
		bill.TotalGST,
		bill.Total,
		bill.PaymentMethod,
		bill.Status,
		bill.Metadata,
		bill.CreatedAt,
	).Error
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []domain.BillItem) error {
	for _, item := range items {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO bill_items (`+billItemColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			item.BillID,
			item.SaleID,
			item.ProductName,
			item.HSNCode,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
			item.GSTRate,
			item.GSTAmount,
			item.Cess,
			item.Total,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindByNumber(ctx context.Context, db *gorm.DB, number string) (*domain.Bill, error) {
	var bill domain.Bill
	err := db.WithContext(ctx).Raw(
		`SELECT `+billColumns+` FROM bills WHERE number = ?`,
		number,
	).Scan(&bill).Error
	if err != nil {
		return nil, err
	}
	if bill.ID == 0 {
		return nil, nil
	}
	return &bill, nil
}

func (r *repo) FindBySaleID(ctx context.Context, db *gorm.DB, saleID snowflake.ID) (*domain.Bill, error) {
	var bill domain.Bill
	err := db.WithContext(ctx).Raw(
		`SELECT `+billColumns+` FROM bills
		 WHERE id = (SELECT bill_id FROM bill_items WHERE sale_id = ? ORDER BY id ASC LIMIT 1)`,
		saleID,
	).Scan(&bill).Error
	if err != nil {
		return nil, err
	}
	if bill.ID == 0 {
		return nil, nil
	}
	return &bill, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Bill, error) {
	var items []domain.Bill
	err := db.WithContext(ctx).Raw(
		`SELECT ` + billColumns + ` FROM bills ORDER BY seq ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, billID snowflake.ID) ([]domain.BillItem, error) {
	var items []domain.BillItem
	err := db.WithContext(ctx).Raw(
		`SELECT `+billItemColumns+` FROM bill_items WHERE bill_id = ? ORDER BY id ASC`,
		billID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
