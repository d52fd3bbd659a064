package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/talenthub/internal/services/auth/user"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates an account with the same email exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Session is one signed-in browser. ClientID ties it to the browser's live
// page so sign-in and sign-out can be pushed there.
type Session struct {
	ID        string
	AccountID string
	ClientID  string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the session is usable at now.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// UserStore persists accounts.
type UserStore interface {
	// CreateUser returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, userID string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	UpdateUserRole(ctx context.Context, userID string, role user.Role, updatedAt time.Time) error
	ConfirmUser(ctx context.Context, userID string, confirmedAt time.Time) error
}

// SessionStore persists sign-in sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, sessionID string) (Session, error)
	RevokeSession(ctx context.Context, sessionID string, revokedAt time.Time) error
	// DeleteInactiveSessions removes sessions expired or revoked before now
	// and returns how many were removed.
	DeleteInactiveSessions(ctx context.Context, now time.Time) (int64, error)
}

// Store is the full auth persistence surface.
type Store interface {
	UserStore
	SessionStore
	Close() error
}

// NormalizeUser trims identifiers and checks required values.
func NormalizeUser(u user.User) (user.User, error) {
	u.ID = strings.TrimSpace(u.ID)
	u.Email = user.NormalizeEmail(u.Email)
	u.Role = user.ParseRole(string(u.Role))
	if u.ID == "" {
		return user.User{}, fmt.Errorf("user id is required")
	}
	if u.Email == "" {
		return user.User{}, fmt.Errorf("user email is required")
	}
	if u.PasswordHash == "" {
		return user.User{}, fmt.Errorf("password hash is required")
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.CreatedAt = u.CreatedAt.UTC()
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	u.UpdatedAt = u.UpdatedAt.UTC()
	if u.ConfirmedAt != nil {
		confirmedAt := u.ConfirmedAt.UTC()
		u.ConfirmedAt = &confirmedAt
	}
	return u, nil
}

// NormalizeSession trims identifiers and checks required values.
func NormalizeSession(session Session) (Session, error) {
	session.ID = strings.TrimSpace(session.ID)
	session.AccountID = strings.TrimSpace(session.AccountID)
	session.ClientID = strings.TrimSpace(session.ClientID)
	if session.ID == "" {
		return Session{}, fmt.Errorf("session id is required")
	}
	if session.AccountID == "" {
		return Session{}, fmt.Errorf("session account id is required")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	session.CreatedAt = session.CreatedAt.UTC()
	if session.ExpiresAt.IsZero() || !session.ExpiresAt.After(session.CreatedAt) {
		return Session{}, fmt.Errorf("session expiry must be after creation")
	}
	session.ExpiresAt = session.ExpiresAt.UTC()
	return session, nil
}
