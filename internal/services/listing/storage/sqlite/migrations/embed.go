// Package migrations embeds the listing SQLite schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
