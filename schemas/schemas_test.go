package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/cvmatch-client/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"config.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestConfigSchema(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
	}{
		{name: "empty", doc: `{}`},
		{
			name: "full",
			doc: `{"api_url": "https://example.com/api", "production": true, "token_file": "/tmp/t.json",
				"token_db": "postgres://localhost/cvmatch", "profile": "work", "timeout": "1m30s", "verbose": false}`,
		},
		{name: "unknown field", doc: `{"api_key": "x"}`, wantError: true},
		{name: "non-http url", doc: `{"api_url": "ftp://example.com"}`, wantError: true},
		{name: "bad timeout", doc: `{"timeout": "soon"}`, wantError: true},
		{name: "numeric timeout", doc: `{"timeout": 30}`, wantError: true},
		{name: "non-postgres db", doc: `{"token_db": "mysql://localhost/db"}`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateJSONString(Config, tt.doc)
			if tt.wantError {
				var validationErr *schemas.ValidationError
				require.ErrorAs(t, err, &validationErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
