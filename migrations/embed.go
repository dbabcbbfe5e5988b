// Package migrations carries the schema history for the PrepMate database,
// embedded so the binary can migrate itself at startup.
package migrations

import "embed"

// Files holds the goose migration scripts.
//
//go:embed *.sql
var Files embed.FS
