// Package sqlite provides SQLite-backed auth persistence.
//
// It is the default on-disk account store used by the web server and the
// seed command.
package sqlite
