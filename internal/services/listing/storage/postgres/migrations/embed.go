package migrations

import "embed"

// FS contains embedded Postgres migrations for listing storage.
//
//go:embed *.sql
var FS embed.FS
