package observability

import (
	"testing"

	"github.com/smallbiznis/saletrack/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(config.Config{Environment: "production"})

	assert.Equal(t, "saletrack", cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "grpc", cfg.OtelExporterProtocol)
	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, 0.1, cfg.OtelSamplingRatio)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigCarriesSettings(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppName:     "till-01",
		AppVersion:  " 1.2.0 ",
		Environment: "staging",
		Observability: config.ObservabilityConfig{
			LogLevel:             "WARN",
			LogFormat:            "console",
			OtelEnabled:          true,
			OtelExporterEndpoint: "collector:4318",
			OtelExporterProtocol: "HTTP",
			OtelSamplingRatio:    5,
		},
	})

	assert.Equal(t, "till-01", cfg.ServiceName)
	assert.Equal(t, "1.2.0", cfg.Version)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.True(t, cfg.OtelEnabled)
	assert.Equal(t, "collector:4318", cfg.OtelExporterEndpoint)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.Equal(t, float64(1), cfg.OtelSamplingRatio)
}

func TestDebugFollowsEnvironment(t *testing.T) {
	assert.True(t, Config{Environment: "development"}.Debug())
	assert.True(t, Config{LogLevel: "debug", Environment: "production"}.Debug())
	assert.False(t, Config{Environment: "staging"}.Debug())
}
