package main

import (
	"fmt"

	"github.com/jonathan/cvmatch-client/internal/observability"
	"github.com/jonathan/cvmatch-client/internal/types"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the signed-in user's profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields; only the flags given are sent",
	Args:  cobra.NoArgs,
	RunE:  runProfileUpdate,
}

var (
	profileFirstName string
	profileLastName  string
	profileEmail     string
	profilePhone     string
	profileLocation  string
	profileBio       string
)

func init() {
	f := profileUpdateCmd.Flags()
	f.StringVar(&profileFirstName, "first-name", "", "First name")
	f.StringVar(&profileLastName, "last-name", "", "Last name")
	f.StringVar(&profileEmail, "email", "", "Email address")
	f.StringVar(&profilePhone, "phone", "", "Phone number")
	f.StringVar(&profileLocation, "location", "", "Location")
	f.StringVar(&profileBio, "bio", "", "Short bio")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	rt := app()
	user, err := rt.client.GetProfile(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	return rt.emit(user, func(p *observability.Printer) {
		p.PrintProfile(user)
	})
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	var update types.ProfileUpdate
	flags := cmd.Flags()
	for name, target := range map[string]struct {
		value string
		field **string
	}{
		"first-name": {profileFirstName, &update.FirstName},
		"last-name":  {profileLastName, &update.LastName},
		"email":      {profileEmail, &update.Email},
		"phone":      {profilePhone, &update.Phone},
		"location":   {profileLocation, &update.Location},
		"bio":        {profileBio, &update.Bio},
	} {
		if flags.Changed(name) {
			value := target.value
			*target.field = &value
		}
	}
	if update.IsEmpty() {
		return fmt.Errorf("nothing to update: pass at least one of --first-name, --last-name, --email, --phone, --location, --bio")
	}

	rt := app()
	user, err := rt.client.UpdateProfile(cmd.Context(), update)
	if err != nil {
		return failure("failed to update profile", err)
	}
	return rt.emit(user, func(p *observability.Printer) {
		p.PrintProfile(user)
	})
}
