package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	route  string
	status int
}

type fakeRecorder struct {
	mu  sync.Mutex
	obs []observation
}

func (f *fakeRecorder) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.obs = append(f.obs, observation{method, route, status})
}

func TestHTTPMetrics_RecordsRoutePattern(t *testing.T) {
	rec := &fakeRecorder{}
	router := gin.New()
	router.Use(HTTPMetrics(rec))
	router.GET("/ledger/accounts/:id/balance", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.DELETE("/ledger/accounts/:id", func(c *gin.Context) { c.Status(http.StatusConflict) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ledger/accounts/abc/balance", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/ledger/accounts/abc", nil))

	require.Len(t, rec.obs, 2)
	assert.Equal(t, observation{http.MethodGet, "/ledger/accounts/:id/balance", http.StatusOK}, rec.obs[0])
	assert.Equal(t, observation{http.MethodDelete, "/ledger/accounts/:id", http.StatusConflict}, rec.obs[1])
}

func TestHTTPMetrics_UnmatchedRoute(t *testing.T) {
	rec := &fakeRecorder{}
	router := gin.New()
	router.Use(HTTPMetrics(rec))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Len(t, rec.obs, 1)
	assert.Equal(t, "", rec.obs[0].route)
	assert.Equal(t, http.StatusNotFound, rec.obs[0].status)
}

func TestHTTPMetrics_NilRecorder(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(nil))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
