// Package storage defines persistence contracts for accounts and sessions.
//
// The auth service depends on these interfaces, not on a schema, so the
// SQLite and Postgres implementations stay interchangeable.
package storage
