package db

import (
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTest opens an isolated in-memory SQLite database.
func NewTest() (*gorm.DB, error) {
	name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	return gorm.Open(sqlite.Open(MemoryDSN(name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}
