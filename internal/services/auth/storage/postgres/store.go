// Package postgres provides Postgres-backed auth persistence.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	pgplatform "github.com/louisbranch/talenthub/internal/platform/storage/postgres"
	"github.com/louisbranch/talenthub/internal/services/auth/storage"
	"github.com/louisbranch/talenthub/internal/services/auth/storage/postgres/migrations"
	"github.com/louisbranch/talenthub/internal/services/auth/user"
)

// MigrationTable records applied auth migrations.
const MigrationTable = "auth_schema_migrations"

const userColumns = `id, email, password_hash, role, confirmed_at, created_at, updated_at`

// Store implements auth persistence over Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres and applies auth migrations.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgplatform.Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pgplatform.ApplyMigrations(ctx, pool, migrations.FS, "", MigrationTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.pool == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func utcPtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	t := value.UTC()
	return &t
}

// CreateUser inserts a new account.
func (s *Store) CreateUser(ctx context.Context, u user.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	u, err := storage.NormalizeUser(u)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.PasswordHash, string(u.Role), u.ConfirmedAt, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser returns an account by id.
func (s *Store) GetUser(ctx context.Context, userID string) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("user id is required")
	}
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
}

// GetUserByEmail returns an account by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	email = user.NormalizeEmail(email)
	if email == "" {
		return user.User{}, fmt.Errorf("email is required")
	}
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *Store) getUser(ctx context.Context, query string, arg string) (user.User, error) {
	var u user.User
	var role string
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &role, &u.ConfirmedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	u.Role = user.ParseRole(role)
	u.ConfirmedAt = utcPtr(u.ConfirmedAt)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

// UpdateUserRole changes an account's role.
func (s *Store) UpdateUserRole(ctx context.Context, userID string, role user.Role, updatedAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.exec(ctx, "update user role",
		`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`,
		string(user.ParseRole(string(role))), updatedAt.UTC(), strings.TrimSpace(userID),
	)
}

// ConfirmUser marks an account's email as confirmed.
func (s *Store) ConfirmUser(ctx context.Context, userID string, confirmedAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.exec(ctx, "confirm user",
		`UPDATE users SET confirmed_at = $1, updated_at = $1 WHERE id = $2`,
		confirmedAt.UTC(), strings.TrimSpace(userID),
	)
}

func (s *Store) exec(ctx context.Context, op string, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreateSession stores a new session.
func (s *Store) CreateSession(ctx context.Context, session storage.Session) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	session, err := storage.NormalizeSession(session)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, client_id, created_at, expires_at, revoked_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		session.ID, session.AccountID, session.ClientID, session.CreatedAt, session.ExpiresAt, utcPtr(session.RevokedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession returns a session by id, including revoked or expired ones.
func (s *Store) GetSession(ctx context.Context, sessionID string) (storage.Session, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Session{}, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return storage.Session{}, storage.ErrNotFound
	}
	var session storage.Session
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, client_id, created_at, expires_at, revoked_at FROM sessions WHERE id = $1`,
		sessionID,
	).Scan(&session.ID, &session.AccountID, &session.ClientID, &session.CreatedAt, &session.ExpiresAt, &session.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Session{}, storage.ErrNotFound
		}
		return storage.Session{}, fmt.Errorf("get session: %w", err)
	}
	session.CreatedAt = session.CreatedAt.UTC()
	session.ExpiresAt = session.ExpiresAt.UTC()
	session.RevokedAt = utcPtr(session.RevokedAt)
	return session, nil
}

// RevokeSession marks a session revoked. Revoking twice keeps the first time.
func (s *Store) RevokeSession(ctx context.Context, sessionID string, revokedAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.exec(ctx, "revoke session",
		`UPDATE sessions SET revoked_at = COALESCE(revoked_at, $1) WHERE id = $2`,
		revokedAt.UTC(), strings.TrimSpace(sessionID),
	)
}

// DeleteInactiveSessions removes expired and revoked sessions.
func (s *Store) DeleteInactiveSessions(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM sessions WHERE expires_at <= $1 OR revoked_at IS NOT NULL`,
		now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete inactive sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

var _ storage.Store = (*Store)(nil)
