// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sc

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/lazycatapps/wasscan/internal/pkg/errors"

	"github.com/tidwall/gjson"
)

// Response is a successful reply from Security Center.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON decodes the whole body into v.
func (r *Response) JSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return apperrors.WrapDecode(err, "Failed to decode response body", r.StatusCode)
	}
	return nil
}

// Envelope decodes the "response" member of the body into v.
func (r *Response) Envelope(v interface{}) error {
	if !gjson.ValidBytes(r.Body) {
		return apperrors.WrapDecode(errors.New("body is not valid JSON"), "Failed to decode response body", r.StatusCode)
	}
	inner := gjson.GetBytes(r.Body, "response")
	if !inner.Exists() {
		return apperrors.WrapDecode(errors.New(`missing "response" member`), "Failed to decode response envelope", r.StatusCode)
	}
	if err := json.Unmarshal([]byte(inner.Raw), v); err != nil {
		return apperrors.WrapDecode(err, "Failed to decode response envelope", r.StatusCode)
	}
	return nil
}
