// Package migrations embeds the schema so the binary can migrate without a
// checkout of the repository.
package migrations

import _ "embed"

//go:embed 001_init.sql
var Init string
