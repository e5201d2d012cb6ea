// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/lazycatapps/wasscan/internal/models"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader is the header Security Center reads API keys from.
const APIKeyHeader = "x-apikey"

// APIKey is a middleware that checks the x-apikey header against the configured
// key pair. An empty accessKey disables the check. The health endpoint is public.
func APIKey(accessKey, secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if accessKey == "" || isPublicEndpoint(c.FullPath()) {
			c.Next()
			return
		}

		raw := c.GetHeader(APIKeyHeader)
		if raw == "" {
			deny(c, http.StatusUnauthorized, "API key required")
			return
		}

		keys := ParseAPIKey(raw)
		if !equal(keys["accesskey"], accessKey) || !equal(keys["secretkey"], secretKey) {
			deny(c, http.StatusForbidden, "Invalid API key")
			return
		}

		c.Set("accessKey", keys["accesskey"])
		c.Next()
	}
}

// ParseAPIKey splits "accesskey=A; secretkey=S;" into its key/value pairs.
// Keys are lower-cased; malformed segments are skipped.
func ParseAPIKey(header string) map[string]string {
	out := make(map[string]string, 2)
	for _, part := range strings.Split(header, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || k == "" {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func deny(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, models.NewErrorEnvelope(models.ErrorCodeUnauthorized, msg, time.Now()))
}

// isPublicEndpoint checks if the endpoint is public (no auth required).
func isPublicEndpoint(path string) bool {
	switch path {
	case "/health", "/rest/health":
		return true
	}
	return false
}
