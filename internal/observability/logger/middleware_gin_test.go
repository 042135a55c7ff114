package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func newTestEngine(cfg MiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware(cfg))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/sales", func(c *gin.Context) {
		_ = c.Error(errors.New("insufficient stock"))
		c.Status(http.StatusConflict)
	})
	return r
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	base, logs := observed()
	r := newTestEngine(MiddlewareConfig{
		Logger: base,
		ErrorClassifier: func(error) (string, string) {
			return "conflict", "insufficient_stock"
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sales", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "/api/sales", fields["route"])
	assert.Equal(t, int64(http.StatusConflict), fields["status"])
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "conflict", fields["error_type"])
	assert.Equal(t, "insufficient_stock", fields["error_code"])
}

func TestGinMiddlewareGeneratesRequestID(t *testing.T) {
	base, logs := observed()
	r := newTestEngine(MiddlewareConfig{Logger: base})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
}
