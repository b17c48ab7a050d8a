package router

import (
	"encoding/json"
	"net/http"
	"testing"

	_ "github.com/erp/ledger/docs"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSwagger(t *testing.T) {
	engine := gin.New()
	RegisterSwagger(engine)

	w := serve(engine, http.MethodGet, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)
	for _, path := range []string{
		"/ledger/accounts",
		"/ledger/accounts/tree",
		"/ledger/accounts/{id}",
		"/ledger/accounts/{id}/balance",
		"/ledger/accounts/by-parent/{name}",
		"/health",
	} {
		assert.Contains(t, doc.Paths, path)
	}

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/swagger/index.html").Code)
}
