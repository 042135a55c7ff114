package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/saletrack/internal/clock"
	"github.com/smallbiznis/saletrack/internal/customer/domain"
	"github.com/smallbiznis/saletrack/internal/customer/repository"
	"github.com/smallbiznis/saletrack/internal/migration"
	"github.com/smallbiznis/saletrack/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, conn
}

func strPtr(v string) *string { return &v }

func TestCreateCustomer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name:   " Asha Traders ",
		Mobile: "9876543210",
		Email:  strPtr("asha@example.com"),
		GSTNo:  strPtr("29ABCDE1234F1Z5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Traders", created.Name)
	assert.True(t, created.TotalPurchases.IsZero())
	assert.Nil(t, created.LastPurchaseAt)

	got, err := svc.GetByID(ctx, domain.GetCustomerRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "9876543210", got.Mobile)
	require.NotNil(t, got.GSTNo)
	assert.Equal(t, "29ABCDE1234F1Z5", *got.GSTNo)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "", Mobile: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Name: "A", Mobile: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidMobile)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Name: "A", Mobile: "1", Email: strPtr("nope")})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestLookups(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name:   "Ravi",
		Mobile: "9000000001",
		GSTNo:  strPtr("27AAAAA0000A1Z5"),
	})
	require.NoError(t, err)

	byMobile, err := svc.GetByMobile(ctx, "9000000001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byMobile.ID)

	byGST, err := svc.GetByGSTNo(ctx, "27AAAAA0000A1Z5")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byGST.ID)

	_, err = svc.GetByMobile(ctx, "1111")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(ctx, domain.GetCustomerRequest{ID: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(ctx, domain.GetCustomerRequest{ID: "77"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddPurchaseAccumulates(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	repo := repository.Provide()

	created, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Meena", Mobile: "9111111111"})
	require.NoError(t, err)

	at := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddPurchase(ctx, conn, created.ID, decimal.RequireFromString("236"), at))
	require.NoError(t, repo.AddPurchase(ctx, conn, created.ID, decimal.RequireFromString("64"), at.Add(time.Hour)))

	got, err := svc.GetByID(ctx, domain.GetCustomerRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.True(t, got.TotalPurchases.Equal(decimal.NewFromInt(300)), got.TotalPurchases.String())
	require.NotNil(t, got.LastPurchaseAt)
	assert.True(t, got.LastPurchaseAt.Equal(at.Add(time.Hour)))

	err = repo.AddPurchase(ctx, conn, snowflake.ID(1), decimal.NewFromInt(1), at)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddPurchaseKeepsFractionalTotalsExact(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	repo := repository.Provide()

	created, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Ravi", Mobile: "9222222222"})
	require.NoError(t, err)

	at := time.Date(2024, 4, 3, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AddPurchase(ctx, conn, created.ID, decimal.RequireFromString("275.3058"), at))
	}

	got, err := svc.GetByID(ctx, domain.GetCustomerRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "825.9174", got.TotalPurchases.String())
}

func TestListReturnsInsertionOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"A", "B"} {
		_, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: name, Mobile: "9" + name})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "B", list[1].Name)
}
