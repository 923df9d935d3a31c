package models

import (
	"errors"
	"fmt"
)

// Common error types
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
	ErrPipeline  = errors.New("aggregation pipeline failed")
)

// AppError represents an application-level error with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
	}
}

// ErrNotFoundWithMsg creates a not found error with custom message
func ErrNotFoundWithMsg(message string) error {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: message,
		Err:     ErrNotFound,
	}
}

// ErrDuplicateIDWithMsg creates a duplicate-id error with custom message
func ErrDuplicateIDWithMsg(message string) error {
	return &AppError{
		Code:    "DUPLICATE_ID",
		Message: message,
		Err:     ErrDuplicate,
	}
}

// ErrPipelineWithCause wraps an aggregation failure with its underlying cause
func ErrPipelineWithCause(message string, cause error) error {
	return &AppError{
		Code:    "PIPELINE_ERROR",
		Message: message,
		Err:     fmt.Errorf("%w: %w", ErrPipeline, cause),
	}
}
