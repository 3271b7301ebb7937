package services

import (
	"errors"
	"usedcom_backend/models"
)

// Sentinel errors for referenced entities that do not exist. Handlers map
// these to 404 responses.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrInquiryNotFound = errors.New("inquiry not found")
	ErrUserNotFound    = errors.New("user not found")
)

// ValidationError reports malformed or missing input with per-field detail.
// It is always raised before any mutation.
type ValidationError struct {
	Fields []models.ErrorDetail
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []models.ErrorDetail{{Field: field, Message: message}}}
}
