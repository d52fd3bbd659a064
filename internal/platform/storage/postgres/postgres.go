// Package postgres opens pgx connection pools and applies embedded
// migrations to them.
package postgres

import (
	"context"
	"fmt"
	"hash/fnv"
	"io/fs"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/louisbranch/talenthub/internal/platform/storage/migrate"
	"github.com/louisbranch/talenthub/internal/platform/timeouts"
)

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Open creates a pool for databaseURL and verifies connectivity.
func Open(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	databaseURL = strings.TrimSpace(databaseURL)
	if databaseURL == "" {
		return nil, fmt.Errorf("database url is required")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.StoreConnect)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// ApplyMigrations runs each migration under root at most once, tracking
// them in migrationTable. An advisory lock keyed on the table name keeps
// concurrent instances from racing.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, migrationFS fs.FS, root string, migrationTable string) error {
	if pool == nil {
		return fmt.Errorf("postgres pool is required")
	}
	if !tableNamePattern.MatchString(migrationTable) {
		return fmt.Errorf("invalid migration table name %q", migrationTable)
	}
	files, err := migrate.Files(migrationFS, root)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migrations: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey(migrationTable)); err != nil {
		return fmt.Errorf("lock migrations: %w", err)
	}
	if _, err := tx.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (
    name TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var applied bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+migrationTable+` WHERE name = $1)`, file.Name).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %s: %w", file.Name, err)
		}
		if applied {
			continue
		}
		if _, err := tx.Exec(ctx, file.Up); err != nil {
			return fmt.Errorf("exec migration %s: %w", file.Name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO `+migrationTable+` (name) VALUES ($1)`, file.Name); err != nil {
			return fmt.Errorf("record migration %s: %w", file.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}

func lockKey(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64() >> 1)
}
