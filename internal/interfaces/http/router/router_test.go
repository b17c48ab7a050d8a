package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
	assert.Empty(t, r.middleware)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	g := NewDomainGroup("ledger", "/ledger")
	g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.Register(g).Setup()

	w := serve(engine, http.MethodGet, "/api/v2/ledger/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/ledger/ping").Code)
}

func TestRouterWithGroupMiddleware(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r := NewRouter(engine, WithGroupMiddleware(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}))
	g := NewDomainGroup("ledger", "/ledger")
	g.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.Register(g).Setup()

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/ledger/ping").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("accounts", "/ledger/accounts")
		assert.Equal(t, "accounts", g.Name())
		assert.Equal(t, "/ledger/accounts", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/a", func(c *gin.Context) { c.Status(http.StatusOK) }).
			POST("/a", func(c *gin.Context) { c.Status(http.StatusCreated) }).
			PUT("/a/:id", func(c *gin.Context) { c.Status(http.StatusOK) }).
			DELETE("/a/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/test/a").Code)
		assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/api/v1/test/a").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPut, "/api/v1/test/a/1").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodDelete, "/api/v1/test/a/1").Code)
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/test/items")
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})
}
