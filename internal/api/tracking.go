package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonathan/cvmatch-client/internal/types"
)

// GetBookmarks lists saved jobs.
func (c *Client) GetBookmarks(ctx context.Context) ([]types.Bookmark, error) {
	var bookmarks []types.Bookmark
	if err := c.do(ctx, request{method: http.MethodGet, path: "bookmarks/", auth: true}, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// AddBookmark saves a job.
func (c *Client) AddBookmark(ctx context.Context, jobID int) (*types.Bookmark, error) {
	body := map[string]int{"job_id": jobID}

	var bookmark types.Bookmark
	if err := c.do(ctx, request{method: http.MethodPost, path: "bookmarks/", body: body, auth: true}, &bookmark); err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// RemoveBookmark removes the bookmark for a job.
func (c *Client) RemoveBookmark(ctx context.Context, jobID int) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("bookmarks/%d/", jobID), auth: true}, nil)
}

// GetApplications lists tracked applications.
func (c *Client) GetApplications(ctx context.Context) ([]types.Application, error) {
	var apps []types.Application
	if err := c.do(ctx, request{method: http.MethodGet, path: "applications/", auth: true}, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// CreateApplication records an application to a job with a resume.
func (c *Client) CreateApplication(ctx context.Context, body types.CreateApplicationRequest) (*types.Application, error) {
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("invalid application: %w", err)
	}

	var app types.Application
	if err := c.do(ctx, request{method: http.MethodPost, path: "applications/", body: body, auth: true}, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplication applies a partial update to an application.
func (c *Client) UpdateApplication(ctx context.Context, applicationID int, update types.ApplicationUpdate) (*types.Application, error) {
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("invalid application update: %w", err)
	}

	var app types.Application
	path := fmt.Sprintf("applications/%d/", applicationID)
	if err := c.do(ctx, request{method: http.MethodPatch, path: path, body: update, auth: true}, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// DeleteApplication deletes an application by ID.
func (c *Client) DeleteApplication(ctx context.Context, applicationID int) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("applications/%d/", applicationID), auth: true}, nil)
}
