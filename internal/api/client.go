// Package api is a typed client for the job-matching backend's REST API.
// It attaches the session's auth token and the CSRF cookie to outgoing
// requests, maps error responses, and decodes payloads into internal/types.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/cvmatch-client/internal/session"
	"golang.org/x/net/publicsuffix"
)

const (
	// DevelopmentBaseURL is the backend address the local dev proxy forwards /api to.
	DevelopmentBaseURL = "http://localhost:8000/api"
	// ProductionBaseURL is used when no explicit URL is configured in production.
	ProductionBaseURL = "https://smartcvmatch-backend.vercel.app/api"

	// CSRFCookieName is the cookie the backend issues the anti-forgery token in.
	CSRFCookieName = "csrftoken"
	// CSRFHeader echoes the CSRF cookie on state-changing requests.
	CSRFHeader = "X-CSRFToken"
	// AuthScheme prefixes the token in the Authorization header.
	AuthScheme = "Token"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. "https://host/api". Required.
	BaseURL string
	// Session holds the auth token. Nil creates an in-memory session.
	Session *session.Session
	// Transport is the innermost round tripper. Nil uses http.DefaultTransport.
	Transport http.RoundTripper
	// Middleware wraps Transport; the first entry is the outermost.
	Middleware []Middleware
	// Jar stores cookies between calls. Nil creates a public-suffix aware jar.
	Jar http.CookieJar
	// Timeout bounds each request. Zero means no timeout; use the context instead.
	Timeout time.Duration
	// Logger receives client logs. Nil uses log.Default().
	Logger *log.Logger
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	jar        http.CookieJar
	session    *session.Session
	logger     *log.Logger
}

// New creates a Client from opts.
func New(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	sess := opts.Session
	if sess == nil {
		sess = session.New(context.Background(), session.NewMemoryStore(), logger)
	}

	jar := opts.Jar
	if jar == nil {
		jar, err = cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Transport: chain(transport, opts.Middleware),
			Jar:       jar,
			Timeout:   opts.Timeout,
		},
		jar:     jar,
		session: sess,
		logger:  logger,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("base URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be absolute", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BaseURL returns the API root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Session returns the session holding the auth token.
func (c *Client) Session() *session.Session {
	return c.session
}

// SetAuthToken replaces the session token; "" signs out.
func (c *Client) SetAuthToken(ctx context.Context, token string) {
	c.session.SetToken(context.WithoutCancel(ctx), token)
}

// CSRFToken returns the current csrftoken cookie value, or "".
func (c *Client) CSRFToken() string {
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		if cookie.Name == CSRFCookieName {
			if v, err := url.PathUnescape(cookie.Value); err == nil {
				return v
			}
			return cookie.Value
		}
	}
	return ""
}

// request describes one backend call.
type request struct {
	method string
	path   string // relative to the base URL
	query  url.Values
	body   any // JSON-encoded when non-nil
	upload *upload
	auth   bool
}

func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

// do sends req and decodes a successful JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, req request, out any) error {
	target := c.resolve(req.path, req.query)

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.upload != nil:
		buf, ct, err := req.upload.encode()
		if err != nil {
			return fmt.Errorf("failed to encode upload: %w", err)
		}
		body, contentType = buf, ct
	case req.body != nil:
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.auth {
		if token := c.session.Token(); token != "" {
			httpReq.Header.Set("Authorization", AuthScheme+" "+token)
		}
	}
	if isMutating(req.method) {
		if csrf := c.CSRFToken(); csrf != "" {
			httpReq.Header.Set(CSRFHeader, csrf)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Printf("[API] %s %s failed: %v", req.method, req.path, err)
		return fmt.Errorf("%s %s: request failed: %w", req.method, req.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response body: %w", req.method, req.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newHTTPError(req.method, req.path, resp.StatusCode, respBody)
		c.logger.Printf("[API] %s %s failed with status %d: %s", req.method, req.path, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return fmt.Errorf("%s %s: empty response body", req.method, req.path)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", req.method, req.path, err)
	}
	return nil
}

// storeAuthToken saves a token returned by an auth endpoint, warning when none came back.
func (c *Client) storeAuthToken(ctx context.Context, token, action string) {
	if token == "" {
		c.logger.Printf("[API] Warning: no token received during %s", action)
		return
	}
	c.session.SetToken(context.WithoutCancel(ctx), token)
	c.logger.Printf("[API] Auth token saved after %s", action)
}
