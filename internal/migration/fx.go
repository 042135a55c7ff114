package migration

import (
	"github.com/smallbiznis/saletrack/internal/config"
	"github.com/smallbiznis/saletrack/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(Run),
)

// Run brings the schema up to date for the configured dialect.
func Run(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
	if cfg.DBType == db.TypePostgres {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB); err != nil {
			return err
		}
	} else if err := AutoMigrate(conn); err != nil {
		return err
	}

	log.Info("database schema ready", zap.String("dialect", cfg.DBType))
	return nil
}
