package main

import (
	"fmt"

	"github.com/jonathan/cvmatch-client/internal/observability"
	"github.com/jonathan/cvmatch-client/internal/types"
	"github.com/spf13/cobra"
)

var resumesCmd = &cobra.Command{
	Use:     "resumes",
	Aliases: []string{"resume"},
	Short:   "Manage uploaded resumes",
}

var resumesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded resumes",
	Args:  cobra.NoArgs,
	RunE:  runResumesList,
}

var resumesUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a resume (PDF, DOCX or TXT)",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesUpload,
}

var resumesDeleteCmd = &cobra.Command{
	Use:   "delete <resume-id>",
	Short: "Delete a resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesDelete,
}

var resumesMatchesCmd = &cobra.Command{
	Use:   "matches <resume-id>",
	Short: "Show job matches computed for a resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesMatches,
}

func init() {
	resumesCmd.AddCommand(resumesListCmd, resumesUploadCmd, resumesDeleteCmd, resumesMatchesCmd)
	rootCmd.AddCommand(resumesCmd)
}

func runResumesList(cmd *cobra.Command, _ []string) error {
	rt := app()
	resumes, err := rt.client.GetResumes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list resumes: %w", err)
	}
	return rt.emit(resumes, func(p *observability.Printer) {
		p.PrintResumes(resumes)
	})
}

func runResumesUpload(cmd *cobra.Command, args []string) error {
	rt := app()
	resume, err := rt.client.UploadResumeFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to upload resume: %w", err)
	}
	return rt.emit(resume, func(p *observability.Printer) {
		p.PrintResumes([]types.Resume{*resume})
	})
}

func runResumesDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID("resume", args[0])
	if err != nil {
		return err
	}

	rt := app()
	if err := rt.client.DeleteResume(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete resume %d: %w", id, err)
	}
	return rt.done("RESUMES", fmt.Sprintf("Deleted resume %d.", id))
}

func runResumesMatches(cmd *cobra.Command, args []string) error {
	id, err := parseID("resume", args[0])
	if err != nil {
		return err
	}

	rt := app()
	matches, err := rt.client.GetResumeMatches(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get matches for resume %d: %w", id, err)
	}
	return rt.emit(matches, func(p *observability.Printer) {
		p.PrintMatches(matches)
	})
}
