package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/saletrack/internal/migration"
	productdomain "github.com/smallbiznis/saletrack/internal/product/domain"
	productrepo "github.com/smallbiznis/saletrack/internal/product/repository"
	"github.com/smallbiznis/saletrack/internal/report/domain"
	transactiondomain "github.com/smallbiznis/saletrack/internal/transaction/domain"
	transactionrepo "github.com/smallbiznis/saletrack/internal/transaction/repository"
	"github.com/smallbiznis/saletrack/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var base = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc          domain.Service
	db           *gorm.DB
	genID        *snowflake.Node
	products     productdomain.Repository
	transactions transactiondomain.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &fixture{
		db:           conn,
		genID:        node,
		products:     productrepo.Provide(),
		transactions: transactionrepo.Provide(),
	}
	f.svc = New(Params{
		DB:           conn,
		Log:          zap.NewNop(),
		Products:     f.products,
		Transactions: f.transactions,
	})
	return f
}

func (f *fixture) addProduct(t *testing.T, price, qty int64) {
	t.Helper()
	require.NoError(t, f.products.Create(context.Background(), f.db, &productdomain.Product{
		ID:        f.genID.Generate().Int64(),
		Name:      "Widget",
		Price:     decimal.NewFromInt(price),
		Quantity:  qty,
		MRP:       decimal.Zero,
		GSTRate:   decimal.NewFromInt(18),
		CessRate:  decimal.Zero,
		CreatedAt: base,
		UpdatedAt: base,
	}))
}

func (f *fixture) addSale(t *testing.T, total int64, at time.Time) transactiondomain.Sale {
	t.Helper()
	hsn := "8471"
	amount := decimal.NewFromInt(total)
	sale := transactiondomain.Sale{
		ID:          f.genID.Generate(),
		ProductID:   f.genID.Generate(),
		ProductName: "Widget",
		HSNCode:     &hsn,
		Quantity:    1,
		UnitPrice:   amount,
		Subtotal:    amount,
		CGST:        decimal.Zero,
		SGST:        decimal.Zero,
		IGST:        decimal.Zero,
		GSTAmount:   decimal.Zero,
		Cess:        decimal.Zero,
		Total:       amount,
		GSTRate:     decimal.Zero,
		CessRate:    decimal.Zero,
		CreatedAt:   at,
	}
	require.NoError(t, f.transactions.InsertSale(context.Background(), f.db, &sale))
	return sale
}

func (f *fixture) addPurchase(t *testing.T, total int64, at time.Time) {
	t.Helper()
	amount := decimal.NewFromInt(total)
	require.NoError(t, f.transactions.InsertPurchase(context.Background(), f.db, &transactiondomain.Purchase{
		ID:          f.genID.Generate(),
		ProductID:   f.genID.Generate(),
		ProductName: "Widget",
		Quantity:    2,
		UnitPrice:   amount.Div(decimal.NewFromInt(2)),
		Subtotal:    amount,
		CGST:        decimal.Zero,
		SGST:        decimal.Zero,
		IGST:        decimal.Zero,
		GSTAmount:   decimal.Zero,
		Cess:        decimal.Zero,
		Total:       amount,
		GSTRate:     decimal.Zero,
		CessRate:    decimal.Zero,
		CreatedAt:   at,
	}))
}

func TestDashboardEmpty(t *testing.T) {
	f := newFixture(t)

	d, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, d.TotalSales.IsZero())
	assert.True(t, d.Profit.IsZero())
	assert.NotNil(t, d.RecentSales)
	assert.Empty(t, d.RecentSales)
	assert.Empty(t, d.RecentPurchases)
}

func TestDashboardTotals(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, 100, 7)
	f.addProduct(t, 20, 5)

	var sales []transactiondomain.Sale
	for i := 0; i < 7; i++ {
		sales = append(sales, f.addSale(t, 100, base.Add(time.Duration(i)*time.Hour)))
	}
	f.addPurchase(t, 300, base)
	f.addPurchase(t, 150, base.Add(time.Hour))

	d, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, d.TotalSales.Equal(decimal.NewFromInt(700)), d.TotalSales.String())
	assert.True(t, d.TotalPurchases.Equal(decimal.NewFromInt(450)), d.TotalPurchases.String())
	assert.True(t, d.TotalInventory.Equal(decimal.NewFromInt(800)), d.TotalInventory.String())
	assert.True(t, d.Profit.Equal(decimal.NewFromInt(250)), d.Profit.String())

	require.Len(t, d.RecentSales, domain.RecentLimit)
	assert.Equal(t, sales[6].ID, d.RecentSales[0].ID)
	assert.Equal(t, sales[2].ID, d.RecentSales[4].ID)
	require.Len(t, d.RecentPurchases, 2)
	assert.True(t, d.RecentPurchases[0].Total.Equal(decimal.NewFromInt(150)))
}

func TestCSV(t *testing.T) {
	f := newFixture(t)
	f.addSale(t, 118, base)

	out, err := f.svc.CSV(context.Background(), domain.KindSales)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.CSVHeader, records[0])
	assert.Equal(t, []string{"2024-04-01 09:00:00", "Widget", "8471", "1", "118.00", "118.00", "0.00", "0.00", "0.00", "118.00"}, records[1])

	out, err = f.svc.CSV(context.Background(), domain.KindPurchases)
	require.NoError(t, err)
	records, err = csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = f.svc.CSV(context.Background(), domain.Kind("refunds"))
	assert.ErrorIs(t, err, domain.ErrInvalidReportType)
}
