// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package middleware provides HTTP middleware for the sandbox Security Center.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, PATCH, DELETE, OPTIONS"
	corsHeaders = "Content-Type, Accept, x-apikey"
)

// CORS returns a middleware that answers cross-origin requests from allowedOrigins.
//
// A "*" entry accepts every origin. When the request carries an Origin header it
// is reflected back so that x-apikey requests from browsers may send credentials.
// Preflight OPTIONS requests are answered with 204 and never reach the handlers.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if value, credentials, ok := matchOrigin(allowedOrigins, origin); ok {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", value)
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			if credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// matchOrigin reports the Allow-Origin value for origin and whether credentials
// may be sent with it.
func matchOrigin(allowed []string, origin string) (string, bool, bool) {
	for _, a := range allowed {
		switch {
		case a == "*" && origin == "":
			return "*", false, true
		case a == "*", a == origin:
			return origin, true, true
		}
	}
	return "", false, false
}

// CORSWithOrigins builds CORS from a comma-separated list. An empty list means "*".
func CORSWithOrigins(originsCSV string) gin.HandlerFunc {
	var origins []string
	for _, part := range strings.Split(originsCSV, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return CORS(origins)
}
