package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func statement(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLoggerLogsFailedQueries(t *testing.T) {
	base, logs := observed()
	l := NewGormLogger(base, DefaultGormLoggerConfig())

	l.Trace(context.Background(), time.Now(), statement(`UPDATE products SET quantity = quantity - ? WHERE id = ?`, 0), errors.New("locked"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "UPDATE", fields["operation"])
	assert.Equal(t, "products", fields["table"])
	assert.Equal(t, "locked", fields["error"])
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	base, logs := observed()
	l := NewGormLogger(base, DefaultGormLoggerConfig())

	l.Trace(context.Background(), time.Now(), statement(`SELECT * FROM bills WHERE number = ?`, 0), gormlogger.ErrRecordNotFound)

	assert.Equal(t, 0, logs.Len())
}

func TestGormLoggerFlagsSlowQueries(t *testing.T) {
	base, logs := observed()
	l := NewGormLogger(base, GormLoggerConfig{Level: gormlogger.Warn, SlowThreshold: time.Millisecond})

	l.Trace(context.Background(), time.Now().Add(-time.Second), statement(`SELECT * FROM "sales"`, 3), nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, true, entry.ContextMap()["slow"])
	assert.Equal(t, "sales", entry.ContextMap()["table"])
	assert.Equal(t, int64(3), entry.ContextMap()["rows_affected"])
}

func TestGormLoggerSilent(t *testing.T) {
	base, logs := observed()
	l := NewGormLogger(base, DefaultGormLoggerConfig()).LogMode(gormlogger.Silent)

	l.Trace(context.Background(), time.Now(), statement(`DELETE FROM products`, 1), errors.New("boom"))
	l.Error(context.Background(), "ignored")

	assert.Equal(t, 0, logs.Len())
}

func TestGormLoggerParamsFilterDropsValues(t *testing.T) {
	l := NewGormLogger(zap.NewNop(), DefaultGormLoggerConfig())

	sql, params := l.ParamsFilter(context.Background(), "SELECT 1", "9876543210")

	assert.Equal(t, "SELECT 1", sql)
	assert.Nil(t, params)
}

func TestSQLParsing(t *testing.T) {
	cases := []struct {
		sql       string
		operation string
		table     string
	}{
		{`INSERT INTO "bill_items" ("id") VALUES (?)`, "INSERT", "bill_items"},
		{`SELECT count(*) FROM customers WHERE mobile = ?`, "SELECT", "customers"},
		{`WITH x AS (SELECT 1) DELETE FROM users`, "SELECT", "users"},
		{``, "UNKNOWN", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.operation, operationFromSQL(tc.sql), tc.sql)
		assert.Equal(t, tc.table, tableFromSQL(tc.sql), tc.sql)
	}
}
