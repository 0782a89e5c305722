package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newLoggedRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(Logger(zap.New(core)))
	return router, logs
}

func TestLoggerSkipsHealthProbes(t *testing.T) {
	router, logs := newLoggedRouter(t)
	router.GET("/api/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, logs.Len())
}

func TestLoggerRecordsRequestFields(t *testing.T) {
	router, logs := newLoggedRouter(t)
	router.POST("/api/process", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	body := strings.NewReader(`{"transcript": "spoke with Priya"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/process", body)
	router.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/api/process", fields["path"])
	assert.EqualValues(t, http.StatusCreated, fields["status"])
	assert.EqualValues(t, req.ContentLength, fields["request_size"])
}

func TestLoggerEscalatesServerErrors(t *testing.T) {
	router, logs := newLoggedRouter(t)
	router.GET("/api/search", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/search", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.ErrorLevel, entry.Level)
	assert.Contains(t, entry.ContextMap()["errors"], assert.AnError.Error())
}
