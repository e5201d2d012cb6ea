// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package models

import "time"

// Error codes placed in the envelope by the sandbox server.
const (
	ErrorCodeNone         = 0
	ErrorCodeUnauthorized = 74
	ErrorCodeNotFound     = 143
	ErrorCodeInvalidInput = 146
	ErrorCodeInternal     = 500
)

// Envelope is the wrapper Security Center puts around every JSON reply.
type Envelope struct {
	Type      string        `json:"type"`
	Response  interface{}   `json:"response"`
	ErrorCode int           `json:"error_code"`
	ErrorMsg  string        `json:"error_msg"`
	Warnings  []interface{} `json:"warnings"`
	Timestamp int64         `json:"timestamp"`
}

// NewEnvelope wraps a successful payload.
func NewEnvelope(payload interface{}, now time.Time) Envelope {
	return Envelope{
		Type:      "regular",
		Response:  payload,
		ErrorCode: ErrorCodeNone,
		Warnings:  []interface{}{},
		Timestamp: now.Unix(),
	}
}

// NewErrorEnvelope builds the body of a failed request.
func NewErrorEnvelope(code int, msg string, now time.Time) Envelope {
	return Envelope{
		Type:      "regular",
		Response:  "",
		ErrorCode: code,
		ErrorMsg:  msg,
		Warnings:  []interface{}{},
		Timestamp: now.Unix(),
	}
}
