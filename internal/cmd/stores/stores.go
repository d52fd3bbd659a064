// Package stores opens the auth and listing stores shared by the web and
// seed commands.
package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	authstorage "github.com/louisbranch/talenthub/internal/services/auth/storage"
	authpostgres "github.com/louisbranch/talenthub/internal/services/auth/storage/postgres"
	authsqlite "github.com/louisbranch/talenthub/internal/services/auth/storage/sqlite"
	listingstorage "github.com/louisbranch/talenthub/internal/services/listing/storage"
	listingpostgres "github.com/louisbranch/talenthub/internal/services/listing/storage/postgres"
	listingsqlite "github.com/louisbranch/talenthub/internal/services/listing/storage/sqlite"
)

// Config selects the backend. Both stores use Postgres when DatabaseURL is
// set and their SQLite files otherwise.
type Config struct {
	DatabaseURL   string
	AuthDBPath    string
	ListingDBPath string
}

// Stores holds the opened stores.
type Stores struct {
	Auth    authstorage.Store
	Listing listingstorage.Store
}

// Open connects both stores and applies their migrations.
func Open(ctx context.Context, cfg Config) (Stores, error) {
	if url := strings.TrimSpace(cfg.DatabaseURL); url != "" {
		authStore, err := authpostgres.Open(ctx, url)
		if err != nil {
			return Stores{}, fmt.Errorf("open auth postgres store: %w", err)
		}
		listingStore, err := listingpostgres.Open(ctx, url)
		if err != nil {
			_ = authStore.Close()
			return Stores{}, fmt.Errorf("open listing postgres store: %w", err)
		}
		return Stores{Auth: authStore, Listing: listingStore}, nil
	}
	authStore, err := authsqlite.Open(ctx, cfg.AuthDBPath)
	if err != nil {
		return Stores{}, fmt.Errorf("open auth sqlite store: %w", err)
	}
	listingStore, err := listingsqlite.Open(ctx, cfg.ListingDBPath)
	if err != nil {
		_ = authStore.Close()
		return Stores{}, fmt.Errorf("open listing sqlite store: %w", err)
	}
	return Stores{Auth: authStore, Listing: listingStore}, nil
}

// Close closes both stores.
func (s Stores) Close() error {
	var errs []error
	if s.Auth != nil {
		if err := s.Auth.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close auth store: %w", err))
		}
	}
	if s.Listing != nil {
		if err := s.Listing.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close listing store: %w", err))
		}
	}
	return errors.Join(errs...)
}
