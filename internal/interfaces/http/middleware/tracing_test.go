package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer sets up a test tracer provider and returns the span recorder.
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})

	return sr
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false, ServiceName: "test-service"}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracingWithConfig_Enabled(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "test-service"}))
	router.GET("/ledger/accounts/tree", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ledger/accounts/tree", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /ledger/accounts/tree", spans[0].Name())
}

func TestTracingAttributeInjector(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(RequestID(), Tracing(), TracingAttributeInjector())
	router.GET("/test", func(c *gin.Context) {
		c.Set(JWTUserIDKey, "user-42")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "req-trace")
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := sr.Ended()
	require.Len(t, spans, 1)

	requestID, ok := spanAttr(spans[0], "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-trace", requestID.AsString())

	userID, ok := spanAttr(spans[0], "user_id")
	require.True(t, ok)
	assert.Equal(t, "user-42", userID.AsString())
}

func TestTracingAttributeInjector_WithoutSpan(t *testing.T) {
	router := gin.New()
	router.Use(TracingAttributeInjector())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSpanErrorMarker(t *testing.T) {
	tests := []struct {
		status      int
		wantCode    codes.Code
		wantMessage string
	}{
		{http.StatusOK, codes.Unset, ""},
		{http.StatusBadRequest, codes.Error, "Client Error"},
		{http.StatusNotFound, codes.Error, "Not Found"},
		{http.StatusConflict, codes.Error, "Conflict"},
		{http.StatusUnprocessableEntity, codes.Error, "Client Error"},
		{http.StatusInternalServerError, codes.Error, ""},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			sr := setupTestTracer(t)

			router := gin.New()
			router.Use(Tracing(), SpanErrorMarker())
			router.GET("/test", func(c *gin.Context) { c.Status(tt.status) })

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

			spans := sr.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantCode, spans[0].Status().Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, spans[0].Status().Description)
			}
		})
	}
}
