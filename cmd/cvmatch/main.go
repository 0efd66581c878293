// Package main provides the cvmatch command-line client for the job-matching backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvmatch",
	Short: "Command-line client for the SmartCVMatch API",
	Long: "cvmatch signs in to the SmartCVMatch backend, uploads resumes, lists and matches jobs, " +
		"and tracks bookmarks and applications.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
}

var (
	configPath  string
	apiURL      string
	production  bool
	tokenFile   string
	tokenDB     string
	profileName string
	timeout     string
	jsonOutput  bool
	verbose     bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a JSON config file")
	flags.StringVar(&apiURL, "api-url", "", "API root URL (overrides config and environment)")
	flags.BoolVar(&production, "production", false, "Use the production API when no URL is given")
	flags.StringVar(&tokenFile, "token-file", "", "File the auth token is stored in (default: user config dir)")
	flags.StringVar(&tokenDB, "token-db", "", "PostgreSQL URL to store the auth token in instead of a file")
	flags.StringVar(&profileName, "profile", "", "Token profile name when using --token-db")
	flags.StringVar(&timeout, "timeout", "", "Per-request timeout, e.g. 30s (default: none)")
	flags.BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log requests and responses to stderr")

	cobra.OnFinalize(closeRuntime)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
