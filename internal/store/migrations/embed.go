// Package migrations holds the goose SQL migrations for the PostgreSQL schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
