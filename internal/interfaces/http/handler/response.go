package handler

import "github.com/erp/ledger/internal/interfaces/http/dto"

// APIResponse is the response envelope with a typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse is the response envelope of a failed request
type ErrorResponse struct {
	Success bool           `json:"success"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}
