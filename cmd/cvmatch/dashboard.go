package main

import (
	"fmt"

	"github.com/jonathan/cvmatch-client/internal/observability"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Summarize profile, resumes, recent bookmarks and applications",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	rt := app()
	profile, err := rt.client.Dashboard(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}
	return rt.emit(profile, func(p *observability.Printer) {
		p.PrintDashboard(profile)
	})
}
