// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package validator provides field validation and type coercion for request payloads.
package validator

import (
	"fmt"
	"math"
	"net/url"
	"strings"
)

const (
	// MaxResourceIDLength bounds identifiers interpolated into request paths.
	MaxResourceIDLength = 128
)

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// Newf builds a ValidationError for field with a formatted message.
func Newf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// RequireString rejects an empty value.
func RequireString(field, value string) error {
	if value == "" {
		return Newf(field, "%s is required and cannot be empty", field)
	}
	return nil
}

// CheckChoice validates value against a closed set of permitted values.
func CheckChoice(field, value string, choices []string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return Newf(field, "%q is not one of the allowed values [%s]", value, strings.Join(choices, ", "))
}

// ValidateResourceID validates an identifier that is placed into a URL path segment.
// Accepts numeric ids and uuids; rejects anything that would change the path.
func ValidateResourceID(field, id string) error {
	if id == "" {
		return Newf(field, "%s cannot be empty", field)
	}
	if len(id) > MaxResourceIDLength {
		return Newf(field, "%s exceeds maximum length of %d characters", field, MaxResourceIDLength)
	}
	if strings.ContainsAny(id, "/?#\\ \t\r\n") || strings.Contains(id, "..") {
		return Newf(field, "%s contains invalid characters", field)
	}
	return nil
}

// ValidateFieldNames validates a projection list. Names are joined with commas,
// so a name may be neither empty nor contain a comma.
func ValidateFieldNames(fields []string) error {
	for i, f := range fields {
		if strings.TrimSpace(f) == "" {
			return Newf("fields", "field name at index %d cannot be empty", i)
		}
		if strings.Contains(f, ",") {
			return Newf("fields", "field name %q cannot contain ','", f)
		}
	}
	return nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return Newf("url", "url cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Newf("url", "url is invalid: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Newf("url", "url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return Newf("url", "url must include a host")
	}
	return nil
}

// AsString asserts that v holds a string.
func AsString(field string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", Newf(field, "expected string, got %T", v)
	}
	return s, nil
}

// AsBool asserts that v holds a bool.
func AsBool(field string, v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, Newf(field, "expected boolean, got %T", v)
	}
	return b, nil
}

// AsInt coerces v to int. Integral floats are accepted because decoded JSON
// carries every number as float64.
func AsInt(field string, v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, outOfRange(field, n)
		}
		return int(n), nil
	case uint:
		if n > math.MaxInt {
			return 0, outOfRange(field, n)
		}
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, outOfRange(field, n)
		}
		return int(n), nil
	case float32:
		return floatToInt(field, float64(n))
	case float64:
		return floatToInt(field, n)
	default:
		return 0, Newf(field, "expected integer, got %T", v)
	}
}

// minIntFloat is -2^(bits-1), exactly representable as a float64. Its negation
// is the first float above the int range; float64(math.MaxInt) rounds up to it.
const minIntFloat = float64(math.MinInt)

func floatToInt(field string, f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, Newf(field, "expected integer, got %v", f)
	}
	if f < minIntFloat || f >= -minIntFloat {
		return 0, outOfRange(field, f)
	}
	return int(f), nil
}

func outOfRange(field string, v interface{}) *ValidationError {
	return Newf(field, "%v is out of range for an integer", v)
}

// AsList asserts that v holds a slice of arbitrary values.
func AsList(field string, v interface{}) ([]interface{}, error) {
	switch l := v.(type) {
	case []interface{}:
		return l, nil
	case []int:
		out := make([]interface{}, len(l))
		for i, n := range l {
			out[i] = n
		}
		return out, nil
	case []string:
		out := make([]interface{}, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, nil
	default:
		return nil, Newf(field, "expected list, got %T", v)
	}
}
