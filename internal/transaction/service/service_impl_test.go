package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/saletrack/internal/clock"
	"github.com/smallbiznis/saletrack/internal/config"
	customerdomain "github.com/smallbiznis/saletrack/internal/customer/domain"
	customerrepo "github.com/smallbiznis/saletrack/internal/customer/repository"
	"github.com/smallbiznis/saletrack/internal/migration"
	productdomain "github.com/smallbiznis/saletrack/internal/product/domain"
	productrepo "github.com/smallbiznis/saletrack/internal/product/repository"
	taxservice "github.com/smallbiznis/saletrack/internal/tax/service"
	"github.com/smallbiznis/saletrack/internal/transaction/domain"
	"github.com/smallbiznis/saletrack/internal/transaction/repository"
	"github.com/smallbiznis/saletrack/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc       domain.Service
	db        *gorm.DB
	clock     *clock.FakeClock
	genID     *snowflake.Node
	products  productdomain.Repository
	customers customerdomain.Repository
}

func newFixture(t *testing.T, cfg config.Config) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &fixture{
		db:        conn,
		clock:     clock.NewFakeClock(time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)),
		genID:     node,
		products:  productrepo.Provide(),
		customers: customerrepo.Provide(),
	}
	f.svc = New(Params{
		DB:        conn,
		Log:       zap.NewNop(),
		Config:    cfg,
		Clock:     f.clock,
		GenID:     node,
		Repo:      repository.Provide(),
		Products:  f.products,
		Customers: f.customers,
		Tax:       taxservice.New(),
	})
	return f
}

func (f *fixture) addProduct(t *testing.T, name string, price int64, qty int64, gst int64) *productdomain.Product {
	t.Helper()
	now := f.clock.Now()
	p := &productdomain.Product{
		ID:        f.genID.Generate().Int64(),
		Name:      name,
		Price:     decimal.NewFromInt(price),
		Quantity:  qty,
		MRP:       decimal.Zero,
		GSTRate:   decimal.NewFromInt(gst),
		CessRate:  decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.products.Create(context.Background(), f.db, p))
	return p
}

func (f *fixture) addCustomer(t *testing.T, name string) *customerdomain.Customer {
	t.Helper()
	now := f.clock.Now()
	c := &customerdomain.Customer{
		ID:             f.genID.Generate(),
		Name:           name,
		Mobile:         "9800000000",
		TotalPurchases: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, f.customers.Insert(context.Background(), f.db, c))
	return c
}

func (f *fixture) quantity(t *testing.T, id int64) int64 {
	t.Helper()
	p, err := f.products.FindByID(context.Background(), f.db, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func idOf(id int64) string { return snowflake.ID(id).String() }

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestRecordSaleDecrementsStock(t *testing.T) {
	f := newFixture(t, config.Config{})
	ctx := context.Background()
	widget := f.addProduct(t, "Widget", 100, 10, 18)

	sale, err := f.svc.RecordSale(ctx, domain.RecordSaleRequest{
		Item: domain.Item{ProductID: idOf(widget.ID), Quantity: 3, UnitPrice: price(100)},
	})
	require.NoError(t, err)

	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, sale.GSTAmount.Equal(decimal.NewFromInt(54)))
	assert.True(t, sale.CGST.Equal(decimal.NewFromInt(27)))
	assert.True(t, sale.SGST.Equal(decimal.NewFromInt(27)))
	assert.True(t, sale.IGST.Equal(decimal.NewFromInt(54)))
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(354)), sale.Total.String())
	assert.Equal(t, "Widget", sale.ProductName)
	assert.Nil(t, sale.CustomerID)
	assert.Equal(t, int64(7), f.quantity(t, widget.ID))

	sales, err := f.svc.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, sale.ID, sales[0].ID)
}

func TestRecordSaleUsesCatalogPriceWhenOmitted(t *testing.T) {
	f := newFixture(t, config.Config{})
	widget := f.addProduct(t, "Widget", 250, 5, 5)

	sale, err := f.svc.RecordSale(context.Background(), domain.RecordSaleRequest{
		Item: domain.Item{ProductID: idOf(widget.ID), Quantity: 2},
	})
	require.NoError(t, err)
	assert.True(t, sale.UnitPrice.Equal(decimal.NewFromInt(250)))
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(525)), sale.Total.String())
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	f := newFixture(t, config.Config{})
	ctx := context.Background()

	_, err := f.svc.RecordSale(ctx, domain.RecordSaleRequest{
		Item: domain.Item{ProductID: "999", Quantity: 1, UnitPrice: price(10)},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	sales, err := f.svc.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestRecordSaleValidation(t *testing.T) {
	f := newFixture(t, config.Config{})
	ctx := context.Background()
	widget := f.addProduct(t, "Widget", 100, 10, 18)

	_, err := f.svc.RecordSale(ctx, domain.RecordSaleRequest{Item: domain.Item{ProductID: idOf(widget.ID), Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.RecordSale(ctx, domain.RecordSaleRequest{Item: domain.Item{ProductID: idOf(widget.ID), Quantity: 1, UnitPrice: price(-1)}})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	tooPrecise := decimal.RequireFromString("99.99999")
	_, err = f.svc.RecordSale(ctx, domain.RecordSaleRequest{Item: domain.Item{ProductID: idOf(widget.ID), Quantity: 1, UnitPrice: &tooPrecise}})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = f.svc.RecordSale(ctx, domain.RecordSaleRequest{Item: domain.Item{ProductID: "widget", Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)

	_, err = f.svc.RecordSale(ctx, domain.RecordSaleRequest{
		Item:       domain.Item{ProductID: idOf(widget.ID), Quantity: 1},
		CustomerID: "42",
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	_, err = f.svc.RecordSales(ctx, domain.RecordSalesRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyItems)

	assert.Equal(t, int64(10), f.quantity(t, widget.ID))
}

func TestRecordSaleRejectsOversell(t *testing.T) {
	f := newFixture(t, config.Config{})
	ctx := context.Background()
	widget := f.addProduct(t, "Widget", 100, 2, 18)

	_, err := f.svc.RecordSale(ctx, domain.RecordSaleRequest{
		Item: domain.Item{ProductID: idOf(widget.ID), Quantity: 3},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.quantity(t, widget.ID))
}

func TestRecordSaleAllowsNegativeStockWhenConfigured(t *testing.T) {
	f := newFixture(t, config.Config{AllowNegativeStock: true})
	widget := f.addProduct(t, "Widget", 100, 2, 18)

	_, err := f.svc.RecordSale(context.Background(), domain.RecordSaleRequest{
		Item: domain.Item{ProductID: idOf(widget.ID), Quantity: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-3), f.quantity(t, widget.ID))
}

func TestCustomerPurchasesAccumulate(t *testing.T) {
	f := newFixture(t, config.Config{})
	ctx := context.Background()
	widget := f.addProduct(t, "Widget", 100, 10, 18)
	customer := f.addCustomer(t, "Asha")

	_, err := f.svc.RecordSale(ctx, domain.RecordSaleRequest{
		Item:       domain.Item{ProductID: idOf(widget.ID), Quantity: 1},
		CustomerID: customer.ID.String(),
	})
	require.NoError(t, err)

	f.clock.Advance(2 * time.Hour)
	second, err := f.svc.RecordSale(ctx, domain.RecordSaleRequest{
		Item:       domain.Item{ProductID: idOf(widget.ID), Quantity: 2},
		CustomerID: customer.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, second.CustomerID)
	assert.Equal(t, customer.ID, *second.CustomerID)

	got, err := f.customers.FindByID(ctx, f.db, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.TotalPurchases.Equal(decimal.NewFromInt(354)), got.TotalPurchases.String())
	require.NotNil(t, got.LastPurchaseAt)
	assert.True(t, got.LastPurchaseAt.Equal(second.CreatedAt))
}

func TestCustomerPurchasesAccumulateFractionalTotals(t *testing.T) {
	f := newFixture(t, config.Config{})
	ctx := context.Background()
	widget := f.addProduct(t, "Widget", 100, 30, 18)
	customer := f.addCustomer(t, "Asha")
	unitPrice := decimal.RequireFromString("33.33")

	for i := 0; i < 3; i++ {
		sale, err := f.svc.RecordSale(ctx, domain.RecordSaleRequest{
			Item:       domain.Item{ProductID: idOf(widget.ID), Quantity: 7, UnitPrice: &unitPrice},
			CustomerID: customer.ID.String(),
		})
		require.NoError(t, err)
		assert.Equal(t, "275.3058", sale.Total.String())
	}

	got, err := f.customers.FindByID(ctx, f.db, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "825.9174", got.TotalPurchases.String())
}

func TestRecordSalesIsAllOrNothing(t *testing.T) {
	f := newFixture(t, config.Config{})
	ctx := context.Background()
	widget := f.addProduct(t, "Widget", 100, 10, 18)
	gadget := f.addProduct(t, "Gadget", 50, 1, 12)

	_, err := f.svc.RecordSales(ctx, domain.RecordSalesRequest{
		Items: []domain.Item{
			{ProductID: idOf(widget.ID), Quantity: 4},
			{ProductID: idOf(gadget.ID), Quantity: 2},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), f.quantity(t, widget.ID))
	assert.Equal(t, int64(1), f.quantity(t, gadget.ID))

	sales, err := f.svc.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestRecordSalesRepeatedProductChecksRunningStock(t *testing.T) {
	f := newFixture(t, config.Config{})
	ctx := context.Background()
	widget := f.addProduct(t, "Widget", 100, 5, 18)

	_, err := f.svc.RecordSales(ctx, domain.RecordSalesRequest{
		Items: []domain.Item{
			{ProductID: idOf(widget.ID), Quantity: 3},
			{ProductID: idOf(widget.ID), Quantity: 3},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), f.quantity(t, widget.ID))

	sales, err := f.svc.RecordSales(ctx, domain.RecordSalesRequest{
		Items: []domain.Item{
			{ProductID: idOf(widget.ID), Quantity: 2},
			{ProductID: idOf(widget.ID), Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Len(t, sales, 2)
	assert.Equal(t, int64(0), f.quantity(t, widget.ID))
}

func TestStockConservation(t *testing.T) {
	f := newFixture(t, config.Config{})
	ctx := context.Background()
	widget := f.addProduct(t, "Widget", 100, 10, 18)

	_, err := f.svc.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		Item: domain.Item{ProductID: idOf(widget.ID), Quantity: 20, UnitPrice: price(80)},
	})
	require.NoError(t, err)
	for _, q := range []int64{3, 4, 5} {
		_, err := f.svc.RecordSale(ctx, domain.RecordSaleRequest{
			Item: domain.Item{ProductID: idOf(widget.ID), Quantity: q},
		})
		require.NoError(t, err)
	}

	sales, err := f.svc.ListSales(ctx)
	require.NoError(t, err)
	purchases, err := f.svc.ListPurchases(ctx)
	require.NoError(t, err)

	var sold, bought int64
	for _, s := range sales {
		sold += s.Quantity
	}
	for _, p := range purchases {
		bought += p.Quantity
	}
	assert.Equal(t, 10+bought-sold, f.quantity(t, widget.ID))
	assert.Equal(t, int64(18), f.quantity(t, widget.ID))
}

func TestRecordPurchase(t *testing.T) {
	f := newFixture(t, config.Config{})
	ctx := context.Background()
	widget := f.addProduct(t, "Widget", 100, 0, 12)

	purchase, err := f.svc.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		Item: domain.Item{ProductID: idOf(widget.ID), Quantity: 10, UnitPrice: price(60)},
	})
	require.NoError(t, err)
	assert.True(t, purchase.Subtotal.Equal(decimal.NewFromInt(600)))
	assert.True(t, purchase.GSTAmount.Equal(decimal.NewFromInt(72)))
	assert.True(t, purchase.Total.Equal(decimal.NewFromInt(672)))
	assert.Equal(t, int64(10), f.quantity(t, widget.ID))

	_, err = f.svc.RecordPurchase(ctx, domain.RecordPurchaseRequest{
		Item: domain.Item{ProductID: "5", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetSale(t *testing.T) {
	f := newFixture(t, config.Config{})
	ctx := context.Background()
	widget := f.addProduct(t, "Widget", 100, 10, 18)

	sale, err := f.svc.RecordSale(ctx, domain.RecordSaleRequest{
		Item: domain.Item{ProductID: idOf(widget.ID), Quantity: 1},
	})
	require.NoError(t, err)

	got, err := f.svc.GetSale(ctx, sale.ID.String())
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(118)))

	_, err = f.svc.GetSale(ctx, "123")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.GetSale(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
