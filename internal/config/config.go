// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/cvmatch-client/internal/api"
	"github.com/jonathan/cvmatch-client/internal/schemas"
	schemafiles "github.com/jonathan/cvmatch-client/schemas"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL    = "CVMATCH_API_URL"
	EnvMode      = "CVMATCH_ENV"
	EnvTokenFile = "CVMATCH_TOKEN_FILE"
	EnvTokenDB   = "CVMATCH_TOKEN_DB"
	EnvProfile   = "CVMATCH_PROFILE"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Backend
	APIURL     string `json:"api_url,omitempty"`    // Explicit API root; wins over every other source
	Production bool   `json:"production,omitempty"` // Use the production API when api_url is not set

	// Token storage
	TokenFile string `json:"token_file,omitempty"` // JSON file the auth token is kept in
	TokenDB   string `json:"token_db,omitempty"`   // PostgreSQL URL; takes precedence over token_file
	Profile   string `json:"profile,omitempty"`    // Token row name in the database store

	// Behavior
	Timeout string `json:"timeout,omitempty"` // Per-request timeout, Go duration syntax
	Verbose bool   `json:"verbose,omitempty"` // Print request logs to stderr

	// ProductionURL is the API root used in production mode when APIURL is
	// empty. It only comes from the environment.
	ProductionURL string `json:"-"`
}

// LoadConfig loads configuration from a JSON file and validates it against
// the config schema.
// Returns an error if the file cannot be read, parsed, or does not match the schema.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("failed to parse config JSON: %s is not valid JSON", path)
	}
	if err := schemas.ValidateJSONString(schemafiles.Config, string(data)); err != nil {
		return nil, fmt.Errorf("config file %s does not match schema: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.ProductionURL = v
	}
	if v, ok := lookup(EnvMode); ok && strings.EqualFold(strings.TrimSpace(v), "production") {
		c.Production = true
	}
	if v, ok := lookup(EnvTokenFile); ok && v != "" {
		c.TokenFile = v
	}
	if v, ok := lookup(EnvTokenDB); ok && v != "" {
		c.TokenDB = v
	}
	if v, ok := lookup(EnvProfile); ok && v != "" {
		c.Profile = v
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{"api_url": c.APIURL, EnvAPIURL: c.ProductionURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: '%s' must be an absolute http(s) URL: %q", name, raw)
		}
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if c.TokenDB != "" && !strings.HasPrefix(c.TokenDB, "postgres://") && !strings.HasPrefix(c.TokenDB, "postgresql://") {
		return fmt.Errorf("config error: 'token_db' must be a postgres:// URL")
	}

	return nil
}

// TimeoutDuration parses Timeout. An empty value means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'timeout' %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'timeout' must be non-negative")
	}
	return d, nil
}

// ResolveBaseURL picks the API root: an explicit APIURL, else the production
// URL in production mode, else the local development backend.
func (c *Config) ResolveBaseURL() string {
	switch {
	case c.APIURL != "":
		return c.APIURL
	case c.Production && c.ProductionURL != "":
		return c.ProductionURL
	case c.Production:
		return api.ProductionBaseURL
	default:
		return api.DevelopmentBaseURL
	}
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.ProductionURL == "" {
		result.ProductionURL = defaults.ProductionURL
	}
	if result.TokenFile == "" {
		result.TokenFile = defaults.TokenFile
	}
	if result.TokenDB == "" {
		result.TokenDB = defaults.TokenDB
	}
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Timeout == "" {
		result.Timeout = defaults.Timeout
	}

	// Bool fields cannot distinguish unset from false, so either source can turn them on
	result.Production = result.Production || defaults.Production
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
