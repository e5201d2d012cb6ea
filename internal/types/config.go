// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package types defines configuration types for the wasscan client and sandbox server.
package types

// Config represents the complete application configuration.
type Config struct {
	SC      SCConfig      // Security Center connection configuration
	Sandbox SandboxConfig // Sandbox server configuration
	CORS    CORSConfig    // CORS policy configuration (sandbox only)
	Log     LogConfig     // Logging configuration
}

// SCConfig defines how the client reaches Security Center.
type SCConfig struct {
	URL       string // Base URL (e.g., "https://sc.example.com"); "/rest" is appended
	AccessKey string // API access key
	SecretKey string // API secret key
	Timeout   int    // Request timeout in seconds (default: 60)
	Insecure  bool   // Skip TLS certificate verification (default: false)
	UserAgent string // User-Agent header value
}

// SandboxConfig defines the sandbox Security Center listener.
type SandboxConfig struct {
	Host      string // Listening address (e.g., "127.0.0.1")
	Port      int    // Listening port (e.g., 8443)
	DataDir   string // Directory for persisted scans; empty keeps scans in memory
	AccessKey string // Accepted API access key; empty disables auth
	SecretKey string // Accepted API secret key
}

// CORSConfig defines Cross-Origin Resource Sharing policy.
type CORSConfig struct {
	AllowedOrigins string // Comma-separated allowed origins (e.g., "*", "https://a.example.com,https://b.example.com")
}

// LogConfig defines logger output.
type LogConfig struct {
	Level      string // debug, info, warn, error (default: info)
	Format     string // text or json (default: text)
	FilePath   string // Log file path; empty logs to stderr
	MaxSize    int    // Megabytes before rotation
	MaxBackups int    // Rotated files to keep
	MaxAge     int    // Days to keep rotated files
	Compress   bool   // Gzip rotated files
}
