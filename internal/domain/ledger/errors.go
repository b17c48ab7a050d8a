package ledger

import (
	"fmt"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Error codes surfaced by the chart of accounts
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeAccountExists      = "ACCOUNT_EXISTS"
	CodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	CodeParentNotFound     = "PARENT_NOT_FOUND"
	CodeUsageConflict      = "USAGE_CONFLICT"
	CodeCodeSpaceExhausted = "CODE_SPACE_EXHAUSTED"
	CodeInvalidCode        = "INVALID_ACCOUNT_CODE"
)

// Sentinels for errors.Is checks; matching is by code
var (
	ErrValidation         = shared.NewDomainError(CodeValidation, "Validation failed")
	ErrAccountExists      = shared.NewDomainError(CodeAccountExists, "Account already exists")
	ErrAccountNotFound    = shared.NewDomainError(CodeAccountNotFound, "Account not found")
	ErrParentNotFound     = shared.NewDomainError(CodeParentNotFound, "Parent account not found")
	ErrUsageConflict      = shared.NewDomainError(CodeUsageConflict, "Account is in use")
	ErrCodeSpaceExhausted = shared.NewDomainError(CodeCodeSpaceExhausted, "No account codes left under parent")
)

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *shared.DomainError {
	return shared.NewDomainError(CodeValidation, message)
}

// NewAccountExistsError reports a case-insensitive name collision
func NewAccountExistsError(name string) *shared.DomainError {
	return shared.NewDomainError(CodeAccountExists, fmt.Sprintf("Account with name [%s] already exists", name))
}

// NewAccountNotFoundError reports an id that does not resolve
func NewAccountNotFoundError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(CodeAccountNotFound, fmt.Sprintf("Account with id [%s] not found", id))
}

// NewAccountNameNotFoundError reports a name that does not resolve
func NewAccountNameNotFoundError(name string) *shared.DomainError {
	return shared.NewDomainError(CodeAccountNotFound, fmt.Sprintf("Account with name [%s] not found", name))
}

// NewParentNotFoundError reports a parent id that does not resolve
func NewParentNotFoundError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(CodeParentNotFound, fmt.Sprintf("Parent account with id [%s] not found", id))
}

// NewUsageConflictError reports that recorded usage blocks a mutation
func NewUsageConflictError(message string, reasons []string) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(CodeUsageConflict, message, reasons)
}
