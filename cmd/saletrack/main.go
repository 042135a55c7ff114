package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/saletrack/internal/auth"
	"github.com/smallbiznis/saletrack/internal/catalog"
	"github.com/smallbiznis/saletrack/internal/clock"
	"github.com/smallbiznis/saletrack/internal/config"
	"github.com/smallbiznis/saletrack/internal/customer"
	"github.com/smallbiznis/saletrack/internal/invoice"
	"github.com/smallbiznis/saletrack/internal/migration"
	"github.com/smallbiznis/saletrack/internal/observability"
	"github.com/smallbiznis/saletrack/internal/product"
	"github.com/smallbiznis/saletrack/internal/providers"
	"github.com/smallbiznis/saletrack/internal/ratelimit"
	"github.com/smallbiznis/saletrack/internal/report"
	"github.com/smallbiznis/saletrack/internal/server"
	"github.com/smallbiznis/saletrack/internal/tax"
	"github.com/smallbiznis/saletrack/internal/transaction"
	"github.com/smallbiznis/saletrack/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		clock.Module,
		providers.Module,

		// Domains
		tax.Module,
		product.Module,
		customer.Module,
		transaction.Module,
		invoice.Module,
		catalog.Module,
		report.Module,
		auth.Module,
		ratelimit.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
