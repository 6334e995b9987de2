package dto

import "github.com/tickbox/tickbox/internal/service"

// ErrorResponse is the single-message error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists every field that failed validation.
type ValidationErrorResponse struct {
	Errors []service.FieldError `json:"errors"`
}
