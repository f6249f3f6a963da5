package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// BaseURL trims whitespace and trailing slashes from a registry URL,
// returning def when raw is empty.
func BaseURL(raw, def string) string {
	s := strings.TrimRight(strings.TrimSpace(raw), "/")
	if s == "" {
		return def
	}
	return s
}

// PathEscape percent-encodes a single URL path segment.
// This is a convenience wrapper around [url.PathEscape].
func PathEscape(s string) string { return url.PathEscape(s) }
