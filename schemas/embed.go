// Package schemas embeds the JSON Schemas shipped with the CLI.
package schemas

import _ "embed"

// Config is the schema for the cvmatch config file.
//
//go:embed config.schema.json
var Config string
