package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Error is a non-2xx response from the backend.
// Message is the compact JSON error body when the body is a JSON object or
// array, otherwise "HTTP error <status>".
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       []byte
}

func (e *Error) Error() string {
	return e.Message
}

// Detail returns the backend's human-readable reason ("error" or "detail"
// field) when the body carries one, otherwise Message.
func (e *Error) Detail() string {
	var fields map[string]any
	if err := json.Unmarshal(e.Body, &fields); err == nil {
		for _, key := range []string{"error", "detail", "message"} {
			if s, ok := fields[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return e.Message
}

func newHTTPError(method, path string, status int, body []byte) *Error {
	return &Error{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    errorMessage(status, body),
		Body:       body,
	}
}

func errorMessage(status int, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid(trimmed) {
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err == nil {
			return compact.String()
		}
	}
	return fmt.Sprintf("HTTP error %d", status)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an *Error.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 or 403 from the backend.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == 401 || code == 403
}
