package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/talenthub/internal/services/auth/storage"
	"github.com/louisbranch/talenthub/internal/services/auth/user"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func putUser(t *testing.T, store *Store, id, email string) user.User {
	t.Helper()
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	u := user.User{ID: id, Email: email, PasswordHash: "hash", CreatedAt: created}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestCreateGetUserRoundTrip(t *testing.T) {
	store := openTempStore(t)
	putUser(t, store, "user-1", "Ama@Example.com")

	got, err := store.GetUserByEmail(context.Background(), " AMA@example.COM ")
	if err != nil {
		t.Fatalf("get user by email: %v", err)
	}
	if got.ID != "user-1" || got.Email != "ama@example.com" || got.Role != user.RoleMember {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.ConfirmedAt != nil {
		t.Fatal("expected unconfirmed user")
	}

	byID, err := store.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if byID.Email != got.Email {
		t.Fatalf("email = %q, want %q", byID.Email, got.Email)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := openTempStore(t)
	putUser(t, store, "user-1", "ama@example.com")

	err := store.CreateUser(context.Background(), user.User{ID: "user-2", Email: "AMA@example.com", PasswordHash: "hash"})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := openTempStore(t)

	if _, err := store.GetUser(context.Background(), "missing"); err != storage.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.GetUserByEmail(context.Background(), "nobody@example.com"); err != storage.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateRoleAndConfirm(t *testing.T) {
	store := openTempStore(t)
	putUser(t, store, "user-1", "ama@example.com")
	at := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	if err := store.UpdateUserRole(context.Background(), "user-1", user.RoleAdmin, at); err != nil {
		t.Fatalf("update role: %v", err)
	}
	if err := store.ConfirmUser(context.Background(), "user-1", at); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	got, err := store.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !got.IsAdmin() || got.ConfirmedAt == nil || !got.ConfirmedAt.Equal(at) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := store.ConfirmUser(context.Background(), "missing", at); err != storage.ErrNotFound {
		t.Fatalf("confirm missing err = %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := openTempStore(t)
	putUser(t, store, "user-1", "ama@example.com")
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	sessions := []storage.Session{
		{ID: "live", AccountID: "user-1", ClientID: "client-1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		{ID: "stale", AccountID: "user-1", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
		{ID: "revoked", AccountID: "user-1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	}
	for _, session := range sessions {
		if err := store.CreateSession(ctx, session); err != nil {
			t.Fatalf("create session %s: %v", session.ID, err)
		}
	}
	if err := store.RevokeSession(ctx, "revoked", now); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	got, err := store.GetSession(ctx, "live")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.ClientID != "client-1" || !got.Active(now) {
		t.Fatalf("unexpected session: %+v", got)
	}
	revoked, err := store.GetSession(ctx, "revoked")
	if err != nil {
		t.Fatalf("get revoked: %v", err)
	}
	if revoked.Active(now) {
		t.Fatal("expected revoked session to be inactive")
	}

	removed, err := store.DeleteInactiveSessions(ctx, now)
	if err != nil {
		t.Fatalf("delete inactive: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if _, err := store.GetSession(ctx, "stale"); err != storage.ErrNotFound {
		t.Fatalf("stale err = %v, want ErrNotFound", err)
	}
	if _, err := store.GetSession(ctx, "live"); err != nil {
		t.Fatalf("live session removed: %v", err)
	}
}

func TestCreateSessionRequiresKnownUser(t *testing.T) {
	store := openTempStore(t)
	now := time.Now()
	err := store.CreateSession(context.Background(), storage.Session{
		ID: "s1", AccountID: "ghost", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	})
	if err == nil {
		t.Fatal("expected foreign key error")
	}
}
