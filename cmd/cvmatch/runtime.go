package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/jonathan/cvmatch-client/internal/api"
	"github.com/jonathan/cvmatch-client/internal/config"
	"github.com/jonathan/cvmatch-client/internal/observability"
	"github.com/jonathan/cvmatch-client/internal/session"
	"github.com/spf13/cobra"
)

// skipInitAnnotation marks commands that should not run the startup probe.
const skipInitAnnotation = "cvmatch/skip-init"

// appState is the per-invocation state built before a command runs.
type appState struct {
	client  *api.Client
	printer *observability.Printer
	out     io.Writer
	closers []func()
}

var current *appState

// app returns the state prepared by setupRuntime.
func app() *appState {
	if current == nil {
		panic("cvmatch: command ran without setupRuntime")
	}
	return current
}

// resolveConfig layers flags over the environment over the config file.
func resolveConfig() (config.Config, error) {
	var fileCfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}
	fileCfg.ApplyEnv(os.LookupEnv)

	flagCfg := config.Config{
		APIURL:     apiURL,
		Production: production,
		TokenFile:  tokenFile,
		TokenDB:    tokenDB,
		Profile:    profileName,
		Timeout:    timeout,
		Verbose:    verbose,
	}
	merged := flagCfg.MergeWithDefaults(fileCfg)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func setupRuntime(cmd *cobra.Command, _ []string) error {
	if !needsRuntime(cmd) {
		return nil
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	logOut := io.Discard
	if cfg.Verbose {
		logOut = cmd.ErrOrStderr()
	}
	logger := log.New(logOut, "", log.LstdFlags)

	ctx := cmd.Context()
	rt := &appState{
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		out:     cmd.OutOrStdout(),
	}

	store, err := openStore(ctx, cfg, rt)
	if err != nil {
		return err
	}

	requestTimeout, err := cfg.TimeoutDuration()
	if err != nil {
		rt.close()
		return err
	}

	middleware := []api.Middleware{api.RequestIDMiddleware()}
	if cfg.Verbose {
		middleware = append(middleware, api.LoggingMiddleware(logger))
	}

	client, err := api.New(api.Options{
		BaseURL:    cfg.ResolveBaseURL(),
		Session:    session.New(ctx, store, logger),
		Middleware: middleware,
		Timeout:    requestTimeout,
		Logger:     logger,
	})
	if err != nil {
		rt.close()
		return fmt.Errorf("failed to create API client: %w", err)
	}
	rt.client = client
	current = rt

	if cmd.Annotations[skipInitAnnotation] == "" {
		client.Initialize(ctx)
	}
	return nil
}

// needsRuntime is false for cobra's built-in help and completion commands.
func needsRuntime(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func openStore(ctx context.Context, cfg config.Config, rt *appState) (session.Store, error) {
	if cfg.TokenDB != "" {
		store, err := session.ConnectPostgresStore(ctx, cfg.TokenDB, cfg.Profile)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, store.Close)
		return store, nil
	}

	path := cfg.TokenFile
	if path == "" {
		var err error
		if path, err = session.DefaultTokenPath(); err != nil {
			return nil, fmt.Errorf("failed to resolve token file: %w", err)
		}
	}
	return session.NewFileStore(path), nil
}

func (rt *appState) close() {
	for _, fn := range rt.closers {
		fn()
	}
	rt.closers = nil
}

func closeRuntime() {
	if current != nil {
		current.close()
		current = nil
	}
}

// emit writes v as JSON when --json is set, otherwise calls render.
func (rt *appState) emit(v any, render func(p *observability.Printer)) error {
	if !jsonOutput {
		render(rt.printer)
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(rt.out, string(data))
	return err
}

// done reports a completed action that has no payload.
func (rt *appState) done(title, message string) error {
	return rt.emit(map[string]string{"status": "ok", "message": message}, func(p *observability.Printer) {
		p.PrintMessage(title, message)
	})
}

func parseID(kind, raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q: must be a positive integer", kind, raw)
	}
	return id, nil
}

// backendError is a command failure whose message carries the backend's reason.
type backendError struct {
	msg string
	err error
}

func (e *backendError) Error() string { return e.msg }
func (e *backendError) Unwrap() error { return e.err }

// failure prefixes err with action, using the backend's reason for API errors.
func failure(action string, err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return &backendError{msg: fmt.Sprintf("%s: %s", action, apiErr.Detail()), err: err}
	}
	return fmt.Errorf("%s: %w", action, err)
}
