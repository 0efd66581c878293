package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cvmatch-client/internal/api"
	"github.com/jonathan/cvmatch-client/internal/observability"
	"github.com/jonathan/cvmatch-client/internal/types"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the auth token",
	Long:  "Signs in with a username and password. The password is read from stdin when --password is not given.",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the auth token",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored auth token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the account password",
	Args:  cobra.NoArgs,
	RunE:  runChangePassword,
}

var (
	authUsername        string
	authPassword        string
	authEmail           string
	authPasswordConfirm string
	currentPassword     string
	newPassword         string
)

func init() {
	loginCmd.Flags().StringVarP(&authUsername, "username", "u", "", "Username (required)")
	loginCmd.Flags().StringVarP(&authPassword, "password", "p", "", "Password (read from stdin if omitted)")
	if err := loginCmd.MarkFlagRequired("username"); err != nil {
		panic(fmt.Sprintf("failed to mark username flag as required: %v", err))
	}

	registerCmd.Flags().StringVarP(&authUsername, "username", "u", "", "Username (required)")
	registerCmd.Flags().StringVarP(&authEmail, "email", "e", "", "Email address (required)")
	registerCmd.Flags().StringVarP(&authPassword, "password", "p", "", "Password (read from stdin if omitted)")
	registerCmd.Flags().StringVar(&authPasswordConfirm, "password-confirm", "", "Password confirmation (defaults to --password)")
	for _, name := range []string{"username", "email"} {
		if err := registerCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	changePasswordCmd.Flags().StringVar(&currentPassword, "current", "", "Current password (required)")
	changePasswordCmd.Flags().StringVar(&newPassword, "new", "", "New password (required)")
	for _, name := range []string{"current", "new"} {
		if err := changePasswordCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, changePasswordCmd)
}

// readPassword returns the flag value, or the first line of in.
func readPassword(flagValue string, in io.Reader) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password is required: pass --password or pipe it on stdin")
	}
	return password, nil
}

// authSummary is the JSON form of a login or registration. The token is not printed.
type authSummary struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	SignedIn bool   `json:"signed_in"`
}

func runLogin(cmd *cobra.Command, _ []string) error {
	password, err := readPassword(authPassword, cmd.InOrStdin())
	if err != nil {
		return err
	}

	rt := app()
	resp, err := rt.client.Login(cmd.Context(), authUsername, password)
	if err != nil {
		return failure("login failed", err)
	}

	summary := authSummary{Username: resp.Username, Email: resp.Email, SignedIn: resp.Token != ""}
	return rt.emit(summary, func(p *observability.Printer) {
		p.PrintAuth("LOGIN", resp)
	})
}

func runRegister(cmd *cobra.Command, _ []string) error {
	password, err := readPassword(authPassword, cmd.InOrStdin())
	if err != nil {
		return err
	}
	confirm := authPasswordConfirm
	if confirm == "" {
		confirm = password
	}

	rt := app()
	resp, err := rt.client.Register(cmd.Context(), types.RegisterRequest{
		Username:  authUsername,
		Email:     authEmail,
		Password:  password,
		Password2: confirm,
	})
	if err != nil {
		return failure("registration failed", err)
	}

	summary := authSummary{Username: resp.Username, Email: resp.Email, SignedIn: resp.Token != ""}
	return rt.emit(summary, func(p *observability.Printer) {
		p.PrintAuth("REGISTERED", resp)
	})
}

func runLogout(cmd *cobra.Command, _ []string) error {
	rt := app()
	if err := rt.client.Logout(cmd.Context()); err != nil {
		// The local token is gone either way
		if !api.IsUnauthorized(err) {
			return fmt.Errorf("logout request failed (local token removed): %w", err)
		}
	}
	return rt.done("LOGOUT", "Signed out.")
}

func runChangePassword(cmd *cobra.Command, _ []string) error {
	rt := app()
	resp, err := rt.client.ChangePassword(cmd.Context(), currentPassword, newPassword)
	if err != nil {
		return failure("failed to change password", err)
	}

	message := resp.Message
	if message == "" {
		message = "Password changed."
	}
	return rt.done("PASSWORD", message)
}
