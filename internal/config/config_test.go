package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "AUTH_ENABLED", "INVENTORY_ALLOW_NEGATIVE_STOCK",
		"DATABASE_TYPE", "SMTP_HOST", "RATE_LIMIT_ENABLED", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.False(t, cfg.AuthEnabled)
	assert.False(t, cfg.AllowNegativeStock)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.False(t, cfg.Email.Enabled())
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.LoginBurst)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "yes")
	t.Setenv("INVENTORY_ALLOW_NEGATIVE_STOCK", "true")
	t.Setenv("DATABASE_TYPE", "Postgres")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_FROM", "bills@example.com")
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("RATE_LIMIT_LOGIN_RATE", "1.5")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "HTTP")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "")

	cfg := Load()

	assert.True(t, cfg.AuthEnabled)
	assert.True(t, cfg.AllowNegativeStock)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.True(t, cfg.Email.Enabled())
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	assert.Equal(t, 1.5, cfg.RateLimit.LoginRate)
	assert.Equal(t, "http", cfg.Observability.OtelExporterProtocol)
}
