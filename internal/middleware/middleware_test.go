package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pdv/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Recovery(), ErrorHandler())
	r.GET("/x", handlers...)
	return r
}

func get(r http.Handler, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	for k, v := range header {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newEngine(func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := get(r, http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = get(r, nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestErrorHandler_DomainError(t *testing.T) {
	r := newEngine(func(c *gin.Context) { _ = c.Error(apierror.StockInsufficient("Estoque insuficiente.")) })

	w := get(r, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	var body apierror.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apierror.KindStock, body.Kind)
	assert.Equal(t, "Estoque insuficiente.", body.Detail)
}

func TestErrorHandler_HidesForeignErrors(t *testing.T) {
	r := newEngine(func(c *gin.Context) { _ = c.Error(errors.New("open /secret/path: permission denied")) })

	w := get(r, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestRecovery(t *testing.T) {
	r := newEngine(func(c *gin.Context) { panic("boom") })
	w := get(r, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:5173"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := &rateLimiter{entries: map[string]*rateEntry{}, limit: 2, window: time.Minute, now: func() time.Time { return now }}

	ok, _ := rl.allow("1.1.1.1")
	assert.True(t, ok)
	ok, _ = rl.allow("1.1.1.1")
	assert.True(t, ok)
	ok, retryAt := rl.allow("1.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, now.Add(time.Minute), retryAt)

	ok, _ = rl.allow("2.2.2.2")
	assert.True(t, ok, "limits are per IP")

	now = now.Add(61 * time.Second)
	ok, _ = rl.allow("1.1.1.1")
	assert.True(t, ok, "a new window resets the count")
	assert.Len(t, rl.entries, 1, "expired entries are purged")
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(0, time.Minute))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	for range 5 {
		assert.Equal(t, http.StatusOK, get(r, nil).Code)
	}
}
