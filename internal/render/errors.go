package render

import (
	"errors"
	"fmt"
)

// RenderError represents invalid input to table rendering.
//
// All render errors are raised synchronously to the immediate caller and
// never retried internally.
type RenderError struct {
	// Code identifies the error category.
	Code RenderErrorCode

	// Message is a human-readable description.
	Message string
}

// RenderErrorCode categorizes render errors.
type RenderErrorCode string

const (
	// ErrCodeInvalidShape indicates a tensor of unrenderable rank.
	ErrCodeInvalidShape RenderErrorCode = "INVALID_SHAPE"

	// ErrCodeInvalidHeaders indicates a header row that does not match the
	// column count.
	ErrCodeInvalidHeaders RenderErrorCode = "INVALID_HEADERS"
)

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidShape returns true if the error is a shape error.
// Uses errors.As to handle wrapped errors.
func IsInvalidShape(err error) bool {
	var re *RenderError
	return errors.As(err, &re) && re.Code == ErrCodeInvalidShape
}

// IsInvalidHeaders returns true if the error is a header mismatch error.
// Uses errors.As to handle wrapped errors.
func IsInvalidHeaders(err error) bool {
	var re *RenderError
	return errors.As(err, &re) && re.Code == ErrCodeInvalidHeaders
}

func invalidShapef(format string, args ...any) *RenderError {
	return &RenderError{Code: ErrCodeInvalidShape, Message: fmt.Sprintf(format, args...)}
}

func invalidHeadersf(format string, args ...any) *RenderError {
	return &RenderError{Code: ErrCodeInvalidHeaders, Message: fmt.Sprintf(format, args...)}
}
