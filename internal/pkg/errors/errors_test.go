// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := New("TEST_ERROR", "Test error message", http.StatusBadRequest)
	expected := "Test error message"

	if err.Error() != expected {
		t.Errorf("Expected error message %s, got %s", expected, err.Error())
	}
}

func TestAppError_ErrorWithWrapped(t *testing.T) {
	originalErr := errors.New("original error")
	err := Wrap(originalErr, "TEST_ERROR", "Test error message", http.StatusBadRequest)
	expected := "Test error message: original error"

	if err.Error() != expected {
		t.Errorf("Expected error message %s, got %s", expected, err.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	err := Wrap(originalErr, "TEST_ERROR", "Test error message", http.StatusBadRequest)

	if !errors.Is(err, originalErr) {
		t.Errorf("Expected errors.Is to find the original error")
	}
}

func TestPredefinedErrors(t *testing.T) {
	testCases := []struct {
		name           string
		err            *AppError
		expectedCode   string
		expectedStatus int
	}{
		{"ErrNotFound", ErrNotFound, CodeNotFound, http.StatusNotFound},
		{"ErrInvalidInput", ErrInvalidInput, CodeInvalid, http.StatusBadRequest},
		{"ErrInternal", ErrInternal, CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.expectedCode {
				t.Errorf("Expected code %s, got %s", tc.expectedCode, tc.err.Code)
			}
			if tc.err.StatusCode != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, tc.err.StatusCode)
			}
		})
	}
}

func TestWrapHelpers(t *testing.T) {
	base := errors.New("boom")

	testCases := []struct {
		name           string
		err            *AppError
		expectedCode   string
		expectedStatus int
	}{
		{"WrapInvalidInput", WrapInvalidInput(base, "bad"), CodeInvalid, http.StatusBadRequest},
		{"WrapInternal", WrapInternal(base, "broken"), CodeInternal, http.StatusInternalServerError},
		{"WrapTransport", WrapTransport(base, "dial"), CodeTransport, 0},
		{"WrapDecode", WrapDecode(base, "decode", http.StatusOK), CodeDecode, http.StatusOK},
		{"NewNotFound", NewNotFound("missing"), CodeNotFound, http.StatusNotFound},
		{"NewInvalidInput", NewInvalidInput("nope"), CodeInvalid, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.expectedCode {
				t.Errorf("Expected code %s, got %s", tc.expectedCode, tc.err.Code)
			}
			if tc.err.StatusCode != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, tc.err.StatusCode)
			}
		})
	}
}

func TestAPIError(t *testing.T) {
	err := &APIError{
		StatusCode: http.StatusForbidden,
		Code:       143,
		Message:    "Permission denied",
		Method:     http.MethodDelete,
		Path:       "wasScan/3",
	}

	msg := err.Error()
	for _, part := range []string{"DELETE", "wasScan/3", "403", "143", "Permission denied"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Expected %q in error message, got %q", part, msg)
		}
	}
	if err.NotFound() {
		t.Error("Expected NotFound() to be false for 403")
	}

	notFound := &APIError{StatusCode: http.StatusNotFound, Method: http.MethodGet, Path: "wasScan/9"}
	if !notFound.NotFound() {
		t.Error("Expected NotFound() to be true for 404")
	}
	if !strings.Contains(notFound.Error(), "Not Found") {
		t.Errorf("Expected status text fallback, got %q", notFound.Error())
	}

	var wrapped error = err
	var target *APIError
	if !errors.As(wrapped, &target) {
		t.Error("Expected errors.As to match *APIError")
	}
}
