package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Custom validation tags
const (
	TagAccountNature = "account_nature"
	TagAccountType   = "account_type"
)

// SetupValidator configures gin's validator with JSON field names and the ledger tags
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	RegisterValidations(v)
}

// RegisterValidations installs the tag name function and custom tags on v
func RegisterValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	_ = v.RegisterValidation(TagAccountNature, validateAccountNature)
	_ = v.RegisterValidation(TagAccountType, validateAccountType)
}

// validateAccountNature accepts debit, credit, both, or empty
func validateAccountNature(fl validator.FieldLevel) bool {
	_, err := ledger.ParseNature(fl.Field().String())
	return err == nil
}

// validateAccountType accepts balance_sheet, p&l, or empty
func validateAccountType(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	_, err := ledger.ParseAccountType(&raw)
	return err == nil
}

// FormatValidationErrors formats validation errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
	}

	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError returns a validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case TagAccountNature:
		return "Nature should be debit, credit or both"
	case TagAccountType:
		return "Account type must be either \"balance_sheet\" or \"p&l\""
	default:
		return "Invalid value"
	}
}
