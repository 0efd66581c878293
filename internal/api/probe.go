package api

import (
	"context"
	"net/http"

	"github.com/jonathan/cvmatch-client/internal/types"
)

// Status fetches the API root. The call is unauthenticated and makes the
// backend issue its CSRF cookie.
func (c *Client) Status(ctx context.Context) (*types.APIStatus, error) {
	var status types.APIStatus
	if err := c.do(ctx, request{method: http.MethodGet, path: ""}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Initialize warms up the connection and CSRF cookie issuance.
// It is best-effort: failures are logged and never returned.
func (c *Client) Initialize(ctx context.Context) {
	c.logger.Printf("[API] Initializing API connection: %s", c.BaseURL())

	status, err := c.Status(ctx)
	if err != nil {
		c.logger.Printf("[API] API initialization failed: %v", err)
		return
	}
	c.logger.Printf("[API] API initialization response: %s (authenticated: %t)", status.Message, status.Authenticated)

	if c.CSRFToken() != "" {
		c.logger.Printf("[API] CSRF Token: Found")
	} else {
		c.logger.Printf("[API] CSRF Token: Not found")
	}
}
