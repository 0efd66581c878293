package api

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_FirstMiddlewareIsOutermost(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(req)
			})
		}
	}
	inner := RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		order = append(order, "transport")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	rt := chain(inner, []Middleware{tag("a"), nil, tag("b")})
	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)
	_, err = rt.RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "transport"}, order)
}

func TestRequestIDMiddleware(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/resumes/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})

	c, err := New(Options{
		BaseURL:    b.server.URL + "/api",
		Middleware: []Middleware{RequestIDMiddleware()},
		Logger:     log.New(&bytes.Buffer{}, "", 0),
	})
	require.NoError(t, err)

	_, err = c.GetResumes(context.Background())
	require.NoError(t, err)

	id := b.last().Header.Get(RequestIDHeader)
	_, parseErr := uuid.Parse(id)
	assert.NoError(t, parseErr)
}

func TestRequestIDMiddleware_KeepsExistingID(t *testing.T) {
	var seen string
	rt := RequestIDMiddleware()(RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		seen = req.Header.Get(RequestIDHeader)
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	}))

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "fixed")
	_, err = rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "fixed", seen)
}

func TestLoggingMiddleware_RedactsCredentials(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/users/profile/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "username": "ana"})
	})

	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	c, err := New(Options{
		BaseURL:    b.server.URL + "/api",
		Middleware: []Middleware{RequestIDMiddleware(), LoggingMiddleware(logger)},
		Logger:     logger,
	})
	require.NoError(t, err)
	c.SetAuthToken(context.Background(), "secret-token")

	_, err = c.GetProfile(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[HTTP]")
	assert.Contains(t, out, "request: GET")
	assert.Contains(t, out, "-> 200 OK")
	assert.Contains(t, out, "Authorization=[redacted]")
	assert.NotContains(t, out, "secret-token")
}

func TestLoggingMiddleware_LogsTransportErrors(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("dial failed")
	rt := LoggingMiddleware(log.New(&buf, "", 0))(RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	}))

	req, err := http.NewRequest(http.MethodPost, "http://example.com/api/", nil)
	require.NoError(t, err)
	_, err = rt.RoundTrip(req)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "error: POST http://example.com/api/: dial failed")
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "json object", status: 400, body: "{\n  \"detail\": \"bad\"\n}", want: `{"detail":"bad"}`},
		{name: "json array", status: 400, body: `["a", "b"]`, want: `["a","b"]`},
		{name: "html", status: 502, body: "<html>Bad Gateway</html>", want: "HTTP error 502"},
		{name: "empty", status: 500, body: "", want: "HTTP error 500"},
		{name: "json scalar", status: 418, body: `"teapot"`, want: "HTTP error 418"},
		{name: "truncated json", status: 400, body: `{"detail":`, want: "HTTP error 400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage(tt.status, []byte(tt.body)))
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(newHTTPError("GET", "users/profile/", 401, nil)))
	assert.True(t, IsUnauthorized(newHTTPError("GET", "users/profile/", 403, nil)))
	assert.False(t, IsUnauthorized(newHTTPError("GET", "users/profile/", 404, nil)))
	assert.False(t, IsUnauthorized(errors.New("other")))
}
