package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jonathan/cvmatch-client/internal/types"
)

// GetJobs lists jobs, filtered by query when it is non-empty.
func (c *Client) GetJobs(ctx context.Context, query string) ([]types.Job, error) {
	var params url.Values
	if query != "" {
		params = url.Values{"q": {query}}
	}

	var jobs []types.Job
	if err := c.do(ctx, request{method: http.MethodGet, path: "jobs/", query: params, auth: true}, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJobMatches returns the backend's best job matches for a resume.
// It never fails: any error is logged and an empty slice is returned.
func (c *Client) GetJobMatches(ctx context.Context, resumeID int) []types.JobMatch {
	c.logger.Printf("[API] Getting job matches for resume %d", resumeID)

	params := url.Values{"resume_id": {strconv.Itoa(resumeID)}}
	var matches []types.JobMatch
	if err := c.do(ctx, request{method: http.MethodGet, path: "jobs/matches/", query: params, auth: true}, &matches); err != nil {
		c.logger.Printf("[API] Error getting job matches: %v", err)
		return []types.JobMatch{}
	}
	if matches == nil {
		matches = []types.JobMatch{}
	}

	c.logger.Printf("[API] Found %d job matches", len(matches))
	return matches
}
