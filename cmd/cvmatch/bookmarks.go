package main

import (
	"fmt"

	"github.com/jonathan/cvmatch-client/internal/observability"
	"github.com/jonathan/cvmatch-client/internal/types"
	"github.com/spf13/cobra"
)

var bookmarksCmd = &cobra.Command{
	Use:     "bookmarks",
	Aliases: []string{"bookmark"},
	Short:   "Manage saved jobs",
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved jobs",
	Args:  cobra.NoArgs,
	RunE:  runBookmarksList,
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <job-id>",
	Short: "Save a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksAdd,
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a saved job",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksRemove,
}

func init() {
	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksAddCmd, bookmarksRemoveCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

func runBookmarksList(cmd *cobra.Command, _ []string) error {
	rt := app()
	bookmarks, err := rt.client.GetBookmarks(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return rt.emit(bookmarks, func(p *observability.Printer) {
		p.PrintBookmarks(bookmarks)
	})
}

func runBookmarksAdd(cmd *cobra.Command, args []string) error {
	jobID, err := parseID("job", args[0])
	if err != nil {
		return err
	}

	rt := app()
	bookmark, err := rt.client.AddBookmark(cmd.Context(), jobID)
	if err != nil {
		return fmt.Errorf("failed to bookmark job %d: %w", jobID, err)
	}
	return rt.emit(bookmark, func(p *observability.Printer) {
		p.PrintBookmarks([]types.Bookmark{*bookmark})
	})
}

func runBookmarksRemove(cmd *cobra.Command, args []string) error {
	jobID, err := parseID("job", args[0])
	if err != nil {
		return err
	}

	rt := app()
	if err := rt.client.RemoveBookmark(cmd.Context(), jobID); err != nil {
		return fmt.Errorf("failed to remove bookmark for job %d: %w", jobID, err)
	}
	return rt.done("BOOKMARKS", fmt.Sprintf("Removed bookmark for job %d.", jobID))
}
