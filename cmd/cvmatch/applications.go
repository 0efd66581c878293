package main

import (
	"fmt"

	"github.com/jonathan/cvmatch-client/internal/observability"
	"github.com/jonathan/cvmatch-client/internal/types"
	"github.com/spf13/cobra"
)

var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"apps"},
	Short:   "Track job applications",
}

var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked applications",
	Args:  cobra.NoArgs,
	RunE:  runApplicationsList,
}

var applicationsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Record an application to a job with one of your resumes",
	Args:  cobra.NoArgs,
	RunE:  runApplicationsCreate,
}

var applicationsUpdateCmd = &cobra.Command{
	Use:   "update <application-id>",
	Short: "Update an application's status, next step or notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationsUpdate,
}

var applicationsDeleteCmd = &cobra.Command{
	Use:   "delete <application-id>",
	Short: "Delete an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationsDelete,
}

var (
	appJobID        int
	appResumeID     int
	appStatus       string
	appNextStep     string
	appNextStepDate string
	appNotes        string
)

func init() {
	applicationsCreateCmd.Flags().IntVar(&appJobID, "job-id", 0, "Job applied to (required)")
	applicationsCreateCmd.Flags().IntVar(&appResumeID, "resume-id", 0, "Resume used (required)")
	for _, name := range []string{"job-id", "resume-id"} {
		if err := applicationsCreateCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	f := applicationsUpdateCmd.Flags()
	f.StringVar(&appStatus, "status", "", "Applied, Interview, Offer or Rejected")
	f.StringVar(&appNextStep, "next-step", "", "Next step, e.g. \"Onsite interview\"")
	f.StringVar(&appNextStepDate, "next-step-date", "", "Date of the next step (YYYY-MM-DD)")
	f.StringVar(&appNotes, "notes", "", "Free-form notes")

	applicationsCmd.AddCommand(applicationsListCmd, applicationsCreateCmd, applicationsUpdateCmd, applicationsDeleteCmd)
	rootCmd.AddCommand(applicationsCmd)
}

func runApplicationsList(cmd *cobra.Command, _ []string) error {
	rt := app()
	apps, err := rt.client.GetApplications(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}
	return rt.emit(apps, func(p *observability.Printer) {
		p.PrintApplications(apps)
	})
}

func runApplicationsCreate(cmd *cobra.Command, _ []string) error {
	rt := app()
	created, err := rt.client.CreateApplication(cmd.Context(), types.CreateApplicationRequest{
		JobID:    appJobID,
		ResumeID: appResumeID,
	})
	if err != nil {
		return failure("failed to create application", err)
	}
	return rt.emit(created, func(p *observability.Printer) {
		p.PrintApplications([]types.Application{*created})
	})
}

func runApplicationsUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID("application", args[0])
	if err != nil {
		return err
	}

	var update types.ApplicationUpdate
	flags := cmd.Flags()
	if flags.Changed("status") {
		status, err := types.ParseApplicationStatus(appStatus)
		if err != nil {
			return err
		}
		update.Status = &status
	}
	if flags.Changed("next-step") {
		update.NextStep = &appNextStep
	}
	if flags.Changed("next-step-date") {
		update.NextStepDate = &appNextStepDate
	}
	if flags.Changed("notes") {
		update.Notes = &appNotes
	}

	rt := app()
	updated, err := rt.client.UpdateApplication(cmd.Context(), id, update)
	if err != nil {
		return fmt.Errorf("failed to update application %d: %w", id, err)
	}
	return rt.emit(updated, func(p *observability.Printer) {
		p.PrintApplications([]types.Application{*updated})
	})
}

func runApplicationsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID("application", args[0])
	if err != nil {
		return err
	}

	rt := app()
	if err := rt.client.DeleteApplication(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete application %d: %w", id, err)
	}
	return rt.done("APPLICATIONS", fmt.Sprintf("Deleted application %d.", id))
}
