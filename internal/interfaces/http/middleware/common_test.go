package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	var ctxID, ginID string
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		ginID = GetRequestID(c)
		ctxID = logger.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("propagates header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "req-abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-abc", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-abc", ginID)
		assert.Equal(t, "req-abc", ctxID)
	})

	t.Run("generates when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 32)
		assert.Equal(t, id, ctxID)
	})

	t.Run("truncates oversized header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("a", 500))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Len(t, ginID, MaxRequestIDLength)
	})
}

func TestGetRequestID_FallsBackToHeader(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set(RequestIDHeader, "from-header")

	assert.Equal(t, "from-header", GetRequestID(c))

	c.Set(RequestIDKey, "from-ctx")
	assert.Equal(t, "from-ctx", GetRequestID(c))
}

func TestGenerateRequestID_Unique(t *testing.T) {
	assert.NotEqual(t, generateRequestID(), generateRequestID())
}

func TestSecure(t *testing.T) {
	router := gin.New()
	router.Use(Secure())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
}
