package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"photo-template-backend/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"wildcard", []string{"*"}, "https://a.test", http.MethodGet, "*", http.StatusOK},
		{"listed origin", []string{"https://a.test"}, "https://a.test", http.MethodGet, "https://a.test", http.StatusOK},
		{"unlisted origin", []string{"https://a.test"}, "https://b.test", http.MethodGet, "", http.StatusOK},
		{"preflight", []string{"*"}, "https://a.test", http.MethodOptions, "*", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.allowed))
			r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

			req := httptest.NewRequest(tt.method, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantOrigin != "" {
				assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("store unavailable"))
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)

	ctx := entries[1].ContextMap()
	assert.Equal(t, "req-1", ctx["request_id"])
	assert.Equal(t, "/boom", ctx["path"])
	assert.EqualValues(t, 500, ctx["status"])
	assert.Contains(t, ctx["error"], "store unavailable")
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/orders/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/orders/1", "/orders/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `photo_orders_http_requests_total{method="GET",path="/orders/:id",status="200"} 2`)
	assert.Contains(t, body, `photo_orders_http_requests_total{method="GET",path="unmatched",status="404"} 1`)
}
