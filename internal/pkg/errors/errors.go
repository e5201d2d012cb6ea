// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors provides unified error handling for the WAS scan client and sandbox server.
package errors

import (
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code and error code.
// It implements the error interface and supports error wrapping (Go 1.13+).
type AppError struct {
	Code       string `json:"code"`    // Error code (e.g., "NOT_FOUND")
	Message    string `json:"message"` // Human-readable error message
	StatusCode int    `json:"-"`       // HTTP status code (not serialized)
	Err        error  `json:"-"`       // Wrapped error (not serialized)
}

// Error returns the error message string.
// Implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
// Enables Go 1.13+ error unwrapping with errors.Is() and errors.As().
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError without wrapping an existing error.
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap creates a new AppError that wraps an existing error.
func Wrap(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// Error codes shared by the client and the sandbox server.
const (
	CodeNotFound  = "NOT_FOUND"
	CodeInvalid   = "INVALID_INPUT"
	CodeInternal  = "INTERNAL_ERROR"
	CodeTransport = "TRANSPORT_ERROR"
	CodeDecode    = "DECODE_ERROR"
)

// Predefined error instances for common error scenarios.
var (
	ErrNotFound     = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrInvalidInput = New(CodeInvalid, "Invalid input parameters", http.StatusBadRequest)
	ErrInternal     = New(CodeInternal, "Internal server error", http.StatusInternalServerError)
)

// NewNotFound creates a not found error (404) for the given message.
func NewNotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// NewInvalidInput creates a new invalid input error (400) without wrapping.
func NewInvalidInput(message string) *AppError {
	return New(CodeInvalid, message, http.StatusBadRequest)
}

// WrapInvalidInput wraps an error as an invalid input error (400).
func WrapInvalidInput(err error, message string) *AppError {
	return Wrap(err, CodeInvalid, message, http.StatusBadRequest)
}

// WrapInternal wraps an error as an internal server error (500).
func WrapInternal(err error, message string) *AppError {
	return Wrap(err, CodeInternal, message, http.StatusInternalServerError)
}

// WrapTransport wraps a network or request construction failure.
// StatusCode is zero because no response was received.
func WrapTransport(err error, message string) *AppError {
	return Wrap(err, CodeTransport, message, 0)
}

// WrapDecode wraps a failure to decode a response body.
func WrapDecode(err error, message string, statusCode int) *AppError {
	return Wrap(err, CodeDecode, message, statusCode)
}

// APIError is returned when Security Center answers with a failing HTTP status
// or a non-zero error_code in its response envelope.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"error_code"`
	Message    string `json:"error_msg"`
	Method     string `json:"-"`
	Path       string `json:"-"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d, error_code %d: %s", e.Method, e.Path, e.StatusCode, e.Code, msg)
}

// NotFound reports whether the server rejected the request with 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
