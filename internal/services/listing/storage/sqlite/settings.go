package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/talenthub/internal/services/listing/storage"
)

// GetContactSettings returns the single settings row.
func (s *Store) GetContactSettings(ctx context.Context) (storage.ContactSettings, error) {
	if err := s.ready(ctx); err != nil {
		return storage.ContactSettings{}, err
	}
	var settings storage.ContactSettings
	var updatedAt int64
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT whatsapp_link, telegram_link, updated_at FROM contact_settings WHERE id = 1`,
	).Scan(&settings.WhatsAppLink, &settings.TelegramLink, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ContactSettings{}, storage.ErrNotFound
		}
		return storage.ContactSettings{}, fmt.Errorf("get contact settings: %w", err)
	}
	settings.UpdatedAt = fromMillis(updatedAt)
	return settings, nil
}

// PutContactSettings creates or replaces the settings row.
func (s *Store) PutContactSettings(ctx context.Context, settings storage.ContactSettings) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	settings = storage.NormalizeContactSettings(settings)
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO contact_settings (id, whatsapp_link, telegram_link, updated_at)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   whatsapp_link = excluded.whatsapp_link,
		   telegram_link = excluded.telegram_link,
		   updated_at = excluded.updated_at`,
		settings.WhatsAppLink,
		settings.TelegramLink,
		toMillis(settings.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put contact settings: %w", err)
	}
	return nil
}
