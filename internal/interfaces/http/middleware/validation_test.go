package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountInput struct {
	Name        string `json:"name" validate:"required,max=10"`
	Nature      string `json:"nature" validate:"account_nature"`
	AccountType string `json:"account_type" validate:"omitempty,account_type"`
	Ignored     string `json:"-" validate:"max=1"`
}

func newTestValidator() *validator.Validate {
	v := validator.New()
	RegisterValidations(v)
	return v
}

func TestAccountNatureTag(t *testing.T) {
	v := newTestValidator()

	for _, nature := range []string{"debit", "credit", "both", "DEBIT", ""} {
		assert.NoError(t, v.Struct(accountInput{Name: "Cash", Nature: nature}), nature)
	}
	assert.Error(t, v.Struct(accountInput{Name: "Cash", Nature: "asset"}))
}

func TestAccountTypeTag(t *testing.T) {
	v := newTestValidator()

	for _, typ := range []string{"balance_sheet", "p&l", ""} {
		assert.NoError(t, v.Struct(accountInput{Name: "Cash", AccountType: typ}), typ)
	}
	assert.Error(t, v.Struct(accountInput{Name: "Cash", AccountType: "income"}))
}

func TestFormatValidationErrors_UsesJSONFieldNames(t *testing.T) {
	v := newTestValidator()
	err := v.Struct(accountInput{Name: strings.Repeat("x", 20), Nature: "asset", AccountType: "income"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")

	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)

	messages := map[string]string{}
	for _, d := range resp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "Must be at most 10 characters", messages["name"])
	assert.Equal(t, "Nature should be debit, credit or both", messages["nature"])
	assert.Contains(t, messages["account_type"], "balance_sheet")
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "")

	require.NotNil(t, resp.Error)
	assert.Empty(t, resp.Error.Details)
}

func TestGetValidationMessage_Required(t *testing.T) {
	v := newTestValidator()
	err := v.Struct(accountInput{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "name", verrs[0].Field())
	assert.Equal(t, "This field is required", getValidationMessage(verrs[0]))
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.POST("/accounts", func(c *gin.Context) {
		var req struct {
			Name   string `json:"name" binding:"required"`
			Nature string `json:"nature" binding:"account_nature"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(`{"nature":"sideways"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
}
