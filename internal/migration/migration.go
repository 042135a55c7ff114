package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	authdomain "github.com/smallbiznis/saletrack/internal/auth/domain"
	customerdomain "github.com/smallbiznis/saletrack/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/saletrack/internal/invoice/domain"
	productdomain "github.com/smallbiznis/saletrack/internal/product/domain"
	transactiondomain "github.com/smallbiznis/saletrack/internal/transaction/domain"
	"gorm.io/gorm"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Models lists every persisted table in dependency order.
func Models() []any {
	return []any{
		&productdomain.Product{},
		&customerdomain.Customer{},
		&transactiondomain.Sale{},
		&transactiondomain.Purchase{},
		&invoicedomain.Bill{},
		&invoicedomain.BillItem{},
		&authdomain.User{},
	}
}

// AutoMigrate creates the schema from the gorm models. It serves the
// sqlite, memory and mysql dialects.
func AutoMigrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// RunMigrations applies the embedded SQL migrations to PostgreSQL.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// migrator.Close would close the shared *sql.DB.

	return nil
}
