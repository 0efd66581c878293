package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/cvmatch-client/internal/api"
	"github.com/jonathan/cvmatch-client/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"api_url": "https://example.com/api",
		"token_file": "/tmp/cvmatch/token.json",
		"profile": "work",
		"timeout": "45s",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/api", cfg.APIURL)
	assert.Equal(t, "/tmp/cvmatch/token.json", cfg.TokenFile)
	assert.Equal(t, "work", cfg.Profile)
	assert.Equal(t, "45s", cfg.Timeout)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_SchemaMismatch(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"api_url": "https://example.com/api", "max_bullets": 3}`))
	require.Error(t, err)
	assert.Nil(t, cfg)

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "does not match schema")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "valid", cfg: Config{APIURL: "http://localhost:8000/api", Timeout: "10s", TokenDB: "postgres://localhost/db"}},
		{name: "relative url", cfg: Config{APIURL: "/api"}, wantErr: "api_url"},
		{name: "bad env url", cfg: Config{ProductionURL: "example.com"}, wantErr: EnvAPIURL},
		{name: "bad timeout", cfg: Config{Timeout: "forever"}, wantErr: "timeout"},
		{name: "negative timeout", cfg: Config{Timeout: "-1s"}, wantErr: "non-negative"},
		{name: "bad db url", cfg: Config{TokenDB: "sqlite://x"}, wantErr: "token_db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTimeoutDuration(t *testing.T) {
	d, err := (&Config{}).TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = (&Config{Timeout: "1m30s"}).TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAPIURL:    "https://prod.example.com/api",
		EnvMode:      "Production",
		EnvTokenFile: "/var/token.json",
		EnvTokenDB:   "postgres://db/cvmatch",
		EnvProfile:   "ci",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Config{TokenFile: "/home/token.json"}
	cfg.ApplyEnv(lookup)

	assert.True(t, cfg.Production)
	assert.Equal(t, "https://prod.example.com/api", cfg.ProductionURL)
	assert.Equal(t, "/var/token.json", cfg.TokenFile)
	assert.Equal(t, "postgres://db/cvmatch", cfg.TokenDB)
	assert.Equal(t, "ci", cfg.Profile)
	assert.Empty(t, cfg.APIURL)
}

func TestApplyEnv_Empty(t *testing.T) {
	cfg := Config{Profile: "default"}
	cfg.ApplyEnv(func(string) (string, bool) { return "", false })
	assert.Equal(t, Config{Profile: "default"}, cfg)
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "development default", cfg: Config{}, want: api.DevelopmentBaseURL},
		{name: "production default", cfg: Config{Production: true}, want: api.ProductionBaseURL},
		{name: "production from env", cfg: Config{Production: true, ProductionURL: "https://p.example.com/api"}, want: "https://p.example.com/api"},
		{name: "env url ignored in development", cfg: Config{ProductionURL: "https://p.example.com/api"}, want: api.DevelopmentBaseURL},
		{name: "explicit wins", cfg: Config{APIURL: "http://10.0.0.2/api", Production: true, ProductionURL: "https://p.example.com/api"}, want: "http://10.0.0.2/api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ResolveBaseURL())
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		APIURL:     "https://file.example.com/api",
		TokenFile:  "/file/token.json",
		Profile:    "file",
		Timeout:    "30s",
		Production: true,
	}

	partial := Config{
		Profile: "flag",
		Verbose: true,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "flag", merged.Profile)
	assert.True(t, merged.Verbose)

	// Default values should fill in empty fields
	assert.Equal(t, "https://file.example.com/api", merged.APIURL)
	assert.Equal(t, "/file/token.json", merged.TokenFile)
	assert.Equal(t, "30s", merged.Timeout)
	assert.True(t, merged.Production)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{APIURL: "http://localhost:8000/api", Profile: "x"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, cfg, merged)
}
