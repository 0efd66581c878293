package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jonathan/cvmatch-client/internal/types"
)

// UploadResume uploads a resume as multipart form data. filename names the
// file part and the resume.
func (c *Client) UploadResume(ctx context.Context, filename string, content io.Reader) (*types.Resume, error) {
	if filename == "" {
		return nil, fmt.Errorf("resume filename is empty")
	}

	c.logger.Printf("[API] Uploading resume %s", filename)
	req := request{
		method: http.MethodPost,
		path:   "resumes/",
		upload: &upload{
			field:    "file",
			filename: filename,
			content:  content,
			fields:   map[string]string{"name": filename},
		},
		auth: true,
	}

	var resume types.Resume
	if err := c.do(ctx, req, &resume); err != nil {
		c.logger.Printf("[API] Error uploading resume: %v", err)
		return nil, err
	}
	return &resume, nil
}

// UploadResumeFile uploads the resume at path.
func (c *Client) UploadResumeFile(ctx context.Context, path string) (*types.Resume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume: %w", err)
	}
	defer func() { _ = f.Close() }()

	return c.UploadResume(ctx, filepath.Base(path), f)
}

// GetResumes lists the signed-in user's resumes.
func (c *Client) GetResumes(ctx context.Context) ([]types.Resume, error) {
	var resumes []types.Resume
	if err := c.do(ctx, request{method: http.MethodGet, path: "resumes/", auth: true}, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

// DeleteResume deletes a resume by ID.
func (c *Client) DeleteResume(ctx context.Context, resumeID int) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("resumes/%d/", resumeID), auth: true}, nil)
}

// GetResumeMatches returns job matches computed for one resume via the
// resume detail route. Unlike GetJobMatches, errors are returned.
func (c *Client) GetResumeMatches(ctx context.Context, resumeID int) ([]types.JobMatch, error) {
	var matches []types.JobMatch
	if err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("resumes/%d/matches/", resumeID), auth: true}, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}
