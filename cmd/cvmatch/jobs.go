package main

import (
	"fmt"

	"github.com/jonathan/cvmatch-client/internal/observability"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse jobs and match them against a resume",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs, optionally filtered by a search query",
	Args:  cobra.NoArgs,
	RunE:  runJobsList,
}

var jobsMatchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Show the best job matches for a resume",
	Args:  cobra.NoArgs,
	RunE:  runJobsMatches,
}

var (
	jobsQuery    string
	jobsResumeID int
)

func init() {
	jobsListCmd.Flags().StringVarP(&jobsQuery, "query", "q", "", "Search query")

	jobsMatchesCmd.Flags().IntVar(&jobsResumeID, "resume-id", 0, "Resume to match against (required)")
	if err := jobsMatchesCmd.MarkFlagRequired("resume-id"); err != nil {
		panic(fmt.Sprintf("failed to mark resume-id flag as required: %v", err))
	}

	jobsCmd.AddCommand(jobsListCmd, jobsMatchesCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	rt := app()
	jobs, err := rt.client.GetJobs(cmd.Context(), jobsQuery)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}
	return rt.emit(jobs, func(p *observability.Printer) {
		p.PrintJobs(jobs)
	})
}

func runJobsMatches(cmd *cobra.Command, _ []string) error {
	if jobsResumeID <= 0 {
		return fmt.Errorf("invalid resume ID %d: must be a positive integer", jobsResumeID)
	}

	// Failures surface as an empty list; --verbose shows the cause
	rt := app()
	matches := rt.client.GetJobMatches(cmd.Context(), jobsResumeID)
	return rt.emit(matches, func(p *observability.Printer) {
		p.PrintMatches(matches)
	})
}
