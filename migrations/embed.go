// Package migrations embeds the database schema migrations so both the
// server and the standalone migrator apply the same files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
