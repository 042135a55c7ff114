package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/saletrack/internal/customer/domain"
	"gorm.io/gorm"
)

const customerColumns = `id, name, mobile, email, gst_no, total_purchases, last_purchase_at, created_at, updated_at`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO customers (`+customerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.Name,
		customer.Mobile,
		customer.Email,
		customer.GSTNo,
		customer.TotalPurchases,
		customer.LastPurchaseAt,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	return r.findOne(ctx, db, `id = ?`, id)
}

func (r *repo) FindByMobile(ctx context.Context, db *gorm.DB, mobile string) (*domain.Customer, error) {
	return r.findOne(ctx, db, `mobile = ?`, mobile)
}

func (r *repo) FindByGSTNo(ctx context.Context, db *gorm.DB, gstNo string) (*domain.Customer, error) {
	return r.findOne(ctx, db, `gst_no = ?`, gstNo)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, where string, arg any) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT `+customerColumns+` FROM customers WHERE `+where+` ORDER BY id ASC LIMIT 1`,
		arg,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	err := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Order("id asc").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) AddPurchase(ctx context.Context, db *gorm.DB, id snowflake.ID, amount decimal.Decimal, at time.Time) error {
	customer, err := r.FindByID(ctx, db, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}

	// Summed in Go: sqlite stores NUMERIC columns as REAL.
	total := customer.TotalPurchases.Add(amount)
	return db.WithContext(ctx).Exec(
		`UPDATE customers
		 SET total_purchases = ?, last_purchase_at = ?, updated_at = ?
		 WHERE id = ?`,
		total,
		at,
		at,
		id,
	).Error
}
