package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "github.com/louisbranch/talenthub/internal/platform/errors"
	"github.com/louisbranch/talenthub/internal/platform/id"
	"github.com/louisbranch/talenthub/internal/services/auth/events"
	"github.com/louisbranch/talenthub/internal/services/auth/storage"
	"github.com/louisbranch/talenthub/internal/services/auth/user"
)

// DefaultSessionTTL is used when Config.SessionTTL is not positive.
const DefaultSessionTTL = 30 * 24 * time.Hour

var (
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = apperrors.EK(apperrors.KindUnauthorized, "auth.genericError", "invalid credentials")
	// ErrEmailNotConfirmed rejects sign-in before the email is confirmed.
	ErrEmailNotConfirmed = apperrors.EK(apperrors.KindUnauthorized, "auth.emailNotConfirmed", "email not confirmed")
	// ErrEmailTaken rejects sign-up with a registered email.
	ErrEmailTaken = apperrors.EK(apperrors.KindConflict, "auth.genericError", "email already registered")
	// ErrSessionNotFound means the session is unknown, expired or revoked.
	ErrSessionNotFound = apperrors.EK(apperrors.KindUnauthorized, "", "session not found")
)

// Config tunes account and session behavior.
type Config struct {
	SessionTTL time.Duration
	// AdminEmails receive the admin role at sign-up and on every sign-in.
	AdminEmails []string
	// RequireConfirmation leaves new accounts unconfirmed.
	RequireConfirmation bool
}

// Identity is a resolved, active session and its account.
type Identity struct {
	User    user.User
	Session storage.Session
}

// Service owns account and session lifecycle.
type Service struct {
	users               storage.UserStore
	sessions            storage.SessionStore
	broker              events.Broker
	sessionTTL          time.Duration
	admins              map[string]struct{}
	requireConfirmation bool
	clock               func() time.Time
	idGenerator         func() (string, error)
}

// NewService builds a Service. A nil broker disables auth events.
func NewService(store storage.Store, broker events.Broker, cfg Config) *Service {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		email = user.NormalizeEmail(email)
		if email != "" {
			admins[email] = struct{}{}
		}
	}
	return &Service{
		users:               store,
		sessions:            store,
		broker:              broker,
		sessionTTL:          ttl,
		admins:              admins,
		requireConfirmation: cfg.RequireConfirmation,
		clock:               time.Now,
		idGenerator:         id.NewID,
	}
}

func (s *Service) roleFor(email string) user.Role {
	if _, ok := s.admins[user.NormalizeEmail(email)]; ok {
		return user.RoleAdmin
	}
	return user.RoleMember
}

// SignUp registers a new account.
func (s *Service) SignUp(ctx context.Context, email string, password string) (user.User, error) {
	if s == nil || s.users == nil {
		return user.User{}, fmt.Errorf("user store is not configured")
	}
	created, err := user.CreateUser(user.CreateUserInput{
		Email:     email,
		Password:  password,
		Role:      s.roleFor(email),
		Confirmed: !s.requireConfirmation,
	}, s.clock, s.idGenerator)
	if err != nil {
		return user.User{}, err
	}
	if err := s.users.CreateUser(ctx, created); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// SignIn checks credentials, opens a session for clientID and announces it.
func (s *Service) SignIn(ctx context.Context, email string, password string, clientID string) (Identity, error) {
	if s == nil || s.users == nil || s.sessions == nil {
		return Identity{}, fmt.Errorf("auth store is not configured")
	}
	found, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("get user: %w", err)
	}
	if !found.CheckPassword(password) {
		return Identity{}, ErrInvalidCredentials
	}
	if !found.Confirmed() {
		return Identity{}, ErrEmailNotConfirmed
	}

	now := s.clock().UTC()
	// The admin list is authoritative in both directions.
	if role := s.roleFor(found.Email); found.Role != role {
		if err := s.users.UpdateUserRole(ctx, found.ID, role, now); err != nil {
			return Identity{}, fmt.Errorf("sync user role: %w", err)
		}
		found.Role = role
		found.UpdatedAt = now
	}

	sessionID, err := s.idGenerator()
	if err != nil {
		return Identity{}, fmt.Errorf("generate session id: %w", err)
	}
	session := storage.Session{
		ID:        sessionID,
		AccountID: found.ID,
		ClientID:  strings.TrimSpace(clientID),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return Identity{}, fmt.Errorf("create session: %w", err)
	}
	s.publish(ctx, events.Event{
		Kind:      events.KindSignedIn,
		AccountID: found.ID,
		SessionID: session.ID,
		ClientID:  session.ClientID,
		At:        now,
	})
	return Identity{User: found, Session: session}, nil
}

// SignOut revokes sessionID. Unknown sessions are already signed out.
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	if s == nil || s.sessions == nil {
		return fmt.Errorf("session store is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get session: %w", err)
	}
	now := s.clock().UTC()
	if err := s.sessions.RevokeSession(ctx, sessionID, now); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.publish(ctx, events.Event{
		Kind:      events.KindSignedOut,
		AccountID: session.AccountID,
		SessionID: session.ID,
		ClientID:  session.ClientID,
		At:        now,
	})
	return nil
}

// Session resolves an active session and its account.
func (s *Service) Session(ctx context.Context, sessionID string) (Identity, error) {
	if s == nil || s.users == nil || s.sessions == nil {
		return Identity{}, fmt.Errorf("auth store is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Identity{}, ErrSessionNotFound
	}
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Identity{}, ErrSessionNotFound
		}
		return Identity{}, fmt.Errorf("get session: %w", err)
	}
	if !session.Active(s.clock().UTC()) {
		return Identity{}, ErrSessionNotFound
	}
	found, err := s.users.GetUser(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Identity{}, ErrSessionNotFound
		}
		return Identity{}, fmt.Errorf("get user: %w", err)
	}
	return Identity{User: found, Session: session}, nil
}

// SessionActive reports whether sessionID resolves to an active session.
func (s *Service) SessionActive(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, nil
	}
	_, err := s.Session(ctx, sessionID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrSessionNotFound) {
		return false, nil
	}
	return false, err
}

// SweepSessions deletes expired and revoked sessions.
func (s *Service) SweepSessions(ctx context.Context) (int64, error) {
	if s == nil || s.sessions == nil {
		return 0, fmt.Errorf("session store is not configured")
	}
	return s.sessions.DeleteInactiveSessions(ctx, s.clock().UTC())
}

// ConfirmEmail marks the account for email as confirmed.
func (s *Service) ConfirmEmail(ctx context.Context, email string) error {
	if s == nil || s.users == nil {
		return fmt.Errorf("user store is not configured")
	}
	found, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if found.Confirmed() {
		return nil
	}
	return s.users.ConfirmUser(ctx, found.ID, s.clock().UTC())
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.broker == nil || event.ClientID == "" {
		return
	}
	if err := s.broker.Publish(ctx, event); err != nil {
		log.Printf("auth: publish %s event failed: %v", event.Kind, err)
	}
}
