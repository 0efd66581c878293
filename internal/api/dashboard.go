package api

import (
	"context"
	"sort"

	"github.com/jonathan/cvmatch-client/internal/types"
	"golang.org/x/sync/errgroup"
)

// RecentBookmarkLimit caps UserProfile.RecentBookmarks.
const RecentBookmarkLimit = 5

// Dashboard fetches the profile, resumes, bookmarks and applications
// concurrently and assembles them into a UserProfile. The first failure
// cancels the remaining calls and is returned.
func (c *Client) Dashboard(ctx context.Context) (*types.UserProfile, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		user      *types.User
		resumes   []types.Resume
		bookmarks []types.Bookmark
		apps      []types.Application
	)

	g.Go(func() error {
		var err error
		user, err = c.GetProfile(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		resumes, err = c.GetResumes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bookmarks, err = c.GetBookmarks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		apps, err = c.GetApplications(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	profile := &types.UserProfile{
		User:            *user,
		Resumes:         nonNil(resumes),
		RecentBookmarks: recentBookmarks(bookmarks, RecentBookmarkLimit),
		Applications:    nonNil(apps),
	}
	if user.Stats != nil {
		profile.Stats = *user.Stats
	} else {
		profile.Stats = types.UserStats{ResumeCount: len(resumes), BookmarkCount: len(bookmarks)}
	}
	return profile, nil
}

// recentBookmarks returns up to limit bookmarks, newest first.
func recentBookmarks(bookmarks []types.Bookmark, limit int) []types.Bookmark {
	sorted := make([]types.Bookmark, len(bookmarks))
	copy(sorted, bookmarks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
