package main

import (
	"fmt"

	"github.com/jonathan/cvmatch-client/internal/observability"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Check the API connection and whether the stored token is accepted",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipInitAnnotation: "true"},
	RunE:        runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	rt := app()
	status, err := rt.client.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to reach API at %s: %w", rt.client.BaseURL(), err)
	}

	csrfFound := rt.client.CSRFToken() != ""
	out := struct {
		BaseURL       string            `json:"base_url"`
		Message       string            `json:"message"`
		Authenticated bool              `json:"authenticated"`
		CSRFCookie    bool              `json:"csrf_cookie"`
		SignedIn      bool              `json:"signed_in"`
		Endpoints     map[string]string `json:"endpoints,omitempty"`
	}{
		BaseURL:       rt.client.BaseURL(),
		Message:       status.Message,
		Authenticated: status.Authenticated,
		CSRFCookie:    csrfFound,
		SignedIn:      rt.client.Session().HasToken(),
		Endpoints:     status.Endpoints,
	}
	return rt.emit(out, func(p *observability.Printer) {
		p.PrintStatus(rt.client.BaseURL(), status, csrfFound)
	})
}
