// Package migrations holds the database schema history. SQL migrations are
// embedded; Go migrations register themselves with goose on import.
package migrations

import "embed"

// FS contains the SQL migration files.
//
//go:embed *.sql
var FS embed.FS
