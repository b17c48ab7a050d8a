package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBodyLimitEngine echoes the number of body bytes the handler could read,
// or 413 when reading hit the limit.
func newBodyLimitEngine(maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID(), BodyLimit(maxBytes))
	engine.Any("/ledger/accounts", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusRequestEntityTooLarge, "read limit %d", tooLarge.Limit)
			return
		}
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, strconv.Itoa(len(body)))
	})
	return engine
}

func TestBodyLimit_PassesBodiesWithinLimit(t *testing.T) {
	engine := newBodyLimitEngine(64)

	body := `{"name":"Petty Cash"}`
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ledger/accounts", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, strconv.Itoa(len(body)), w.Body.String())
}

func TestBodyLimit_RejectsDeclaredLengthOverLimit(t *testing.T) {
	engine := newBodyLimitEngine(16)

	req := httptest.NewRequest(http.MethodPost, "/ledger/accounts", strings.NewReader(strings.Repeat("a", 17)))
	req.Header.Set(RequestIDHeader, "req-oversized")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	errInfo := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeRequestTooLarge, errInfo.Code)
	assert.Equal(t, "req-oversized", errInfo.RequestID)
}

func TestBodyLimit_CutsOffStreamedBodies(t *testing.T) {
	engine := newBodyLimitEngine(16)

	req := httptest.NewRequest(http.MethodPut, "/ledger/accounts", strings.NewReader(strings.Repeat("a", 40)))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "read limit 16", w.Body.String())
}

func TestBodyLimit_NonPositiveLimitDisablesCheck(t *testing.T) {
	for _, limit := range []int64{0, -1} {
		t.Run(strconv.FormatInt(limit, 10), func(t *testing.T) {
			engine := newBodyLimitEngine(limit)

			for _, length := range []int64{4096, -1} {
				req := httptest.NewRequest(http.MethodPost, "/ledger/accounts", strings.NewReader(strings.Repeat("a", 4096)))
				req.ContentLength = length
				w := httptest.NewRecorder()
				engine.ServeHTTP(w, req)

				assert.Equal(t, http.StatusOK, w.Code)
				assert.Equal(t, "4096", w.Body.String())
			}
		})
	}
}

func TestBodyLimit_AllowsRequestsWithoutBody(t *testing.T) {
	engine := newBodyLimitEngine(1)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ledger/accounts", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Body.String())
}
