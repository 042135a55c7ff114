package observability

import (
	"strings"

	"github.com/smallbiznis/saletrack/internal/config"
)

const defaultSamplingRatio = 0.1

// Config holds the resolved logging and tracing settings.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

// LoadConfig resolves observability settings from the application config,
// filling defaults for anything left blank.
func LoadConfig(cfg config.Config) Config {
	obs := cfg.Observability

	out := Config{
		ServiceName:          firstNonEmpty(cfg.AppName, "saletrack"),
		Environment:          strings.TrimSpace(cfg.Environment),
		Version:              strings.TrimSpace(cfg.AppVersion),
		LogLevel:             firstNonEmpty(strings.ToLower(obs.LogLevel), "info"),
		LogFormat:            firstNonEmpty(strings.ToLower(obs.LogFormat), "json"),
		OtelEnabled:          obs.OtelEnabled,
		OtelExporterEndpoint: strings.TrimSpace(obs.OtelExporterEndpoint),
		OtelExporterProtocol: firstNonEmpty(strings.ToLower(obs.OtelExporterProtocol), "grpc"),
		OtelSamplingRatio:    obs.OtelSamplingRatio,
	}

	switch {
	case out.OtelSamplingRatio <= 0:
		out.OtelSamplingRatio = defaultSamplingRatio
	case out.OtelSamplingRatio > 1:
		out.OtelSamplingRatio = 1
	}
	return out
}

func (c Config) Debug() bool {
	if strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug") {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func firstNonEmpty(value, def string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return def
}
