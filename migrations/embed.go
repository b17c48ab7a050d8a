// Package migrations embeds the SQL migrations so binaries carry their schema.
package migrations

import "embed"

// FS holds every *.up.sql and *.down.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
