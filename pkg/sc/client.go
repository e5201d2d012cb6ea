// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package sc is a client for the Tenable Security Center REST API.
//
// Requests are authenticated with an API key pair and decoded from the
// {"response": ...} envelope that Security Center wraps around its replies.
// The client never retries: transport and status errors are returned as-is.
package sc

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/lazycatapps/wasscan/internal/pkg/errors"
	"github.com/lazycatapps/wasscan/internal/pkg/logger"
	"github.com/lazycatapps/wasscan/internal/pkg/validator"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"
)

const (
	restPrefix       = "/rest"
	apiKeyHeader     = "x-apikey"
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "wasscan-go/1.0"
)

// Logger is the logging interface accepted by the client.
type Logger = logger.Logger

// Config configures a Client.
type Config struct {
	URL        string        // Base URL, e.g. "https://sc.example.com"
	AccessKey  string        // API access key
	SecretKey  string        // API secret key
	Timeout    time.Duration // Per-request timeout (default: 60s)
	Insecure   bool          // Skip TLS certificate verification
	UserAgent  string        // User-Agent header (default: "wasscan-go/1.0")
	HTTPClient *http.Client  // Overrides the pooled client; Timeout and Insecure are then ignored
	Logger     Logger        // Request logging at debug level (default: discard)
}

// Client issues authenticated JSON requests against Security Center.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	accessKey string
	secretKey string
	userAgent string
	http      *http.Client
	log       Logger
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	if err := validator.ValidateBaseURL(cfg.URL); err != nil {
		return nil, err
	}
	u, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(u.Path, restPrefix) {
		u.Path += restPrefix
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = cleanhttp.DefaultPooledClient()
		hc.Timeout = cfg.Timeout
		if hc.Timeout <= 0 {
			hc.Timeout = defaultTimeout
		}
		if cfg.Insecure {
			if t, ok := hc.Transport.(*http.Transport); ok {
				t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed appliances
			}
		}
	}

	c := &Client{
		baseURL:   u,
		accessKey: cfg.AccessKey,
		secretKey: cfg.SecretKey,
		userAgent: cfg.UserAgent,
		http:      hc,
		log:       cfg.Logger,
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.log == nil {
		c.log = logger.Nop{}
	}
	return c, nil
}

// BaseURL returns the REST root all paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do sends one request and checks the reply. A non-2xx status or a non-zero
// error_code in the body is returned as *APIError.
func (c *Client) Do(ctx context.Context, method, path string, params url.Values, body interface{}) (*Response, error) {
	target := *c.baseURL
	target.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		target.RawQuery = params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.WrapInvalidInput(err, "Failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, apperrors.WrapTransport(err, "Failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessKey != "" || c.secretKey != "" {
		req.Header.Set(apiKeyHeader, fmt.Sprintf("accesskey=%s; secretkey=%s;", c.accessKey, c.secretKey))
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("%s %s failed: %v", method, path, err)
		return nil, apperrors.WrapTransport(err, fmt.Sprintf("%s %s failed", method, path))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.WrapTransport(err, "Failed to read response body")
	}
	c.log.Debug("%s %s -> %d (%d bytes, %s)", method, path, resp.StatusCode, len(data), time.Since(start).Round(time.Millisecond))

	if err := checkResponse(method, path, resp.StatusCode, data); err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// checkResponse maps a failing reply to *APIError.
func checkResponse(method, path string, status int, data []byte) error {
	var code int
	var msg string
	if gjson.ValidBytes(data) {
		code = int(gjson.GetBytes(data, "error_code").Int())
		msg = gjson.GetBytes(data, "error_msg").String()
	}

	if status >= 200 && status < 300 && code == 0 {
		return nil
	}
	if msg == "" && (status < 200 || status >= 300) {
		msg = strings.TrimSpace(string(data))
	}
	return &APIError{
		StatusCode: status,
		Code:       code,
		Message:    msg,
		Method:     method,
		Path:       path,
	}
}
