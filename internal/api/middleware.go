package api

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Middleware wraps a round tripper. Middleware is installed per Client;
// nothing is patched globally.
type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(req).
func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// chain applies middleware so that mws[0] sees the request first.
func chain(rt http.RoundTripper, mws []Middleware) http.RoundTripper {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			rt = mws[i](rt)
		}
	}
	return rt
}

// RequestIDMiddleware stamps each request with an X-Request-ID unless one is already set.
func RequestIDMiddleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(RequestIDHeader) == "" {
				req = req.Clone(req.Context())
				req.Header.Set(RequestIDHeader, uuid.NewString())
			}
			return next.RoundTrip(req)
		})
	}
}

// LoggingMiddleware logs every request, response, and transport error.
// Credentials in headers are redacted.
func LoggingMiddleware(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			id := req.Header.Get(RequestIDHeader)
			if id == "" {
				id = "-"
			}
			logger.Printf("[HTTP] %s request: %s %s headers=%s", id, req.Method, req.URL.Redacted(), formatHeaders(req.Header))

			start := time.Now()
			resp, err := next.RoundTrip(req)
			if err != nil {
				logger.Printf("[HTTP] %s error: %s %s: %v", id, req.Method, req.URL.Redacted(), err)
				return nil, err
			}

			logger.Printf("[HTTP] %s response: %s %s -> %d %s in %v headers=%s",
				id, req.Method, req.URL.Redacted(), resp.StatusCode, http.StatusText(resp.StatusCode),
				time.Since(start).Round(time.Millisecond), formatHeaders(resp.Header))
			return resp, nil
		})
	}
}

var redactedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
	"Set-Cookie":    true,
	"X-Csrftoken":   true,
}

func formatHeaders(h http.Header) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		value := strings.Join(h[k], ", ")
		if redactedHeaders[http.CanonicalHeaderKey(k)] {
			value = "[redacted]"
		}
		parts = append(parts, k+"="+value)
	}
	return "{" + strings.Join(parts, "; ") + "}"
}
