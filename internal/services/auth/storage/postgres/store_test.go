package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/louisbranch/talenthub/internal/platform/id"
	"github.com/louisbranch/talenthub/internal/services/auth/storage"
	"github.com/louisbranch/talenthub/internal/services/auth/user"
)

func TestOpenRequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected missing url error")
	}
}

func TestAccountsAndSessionsAgainstDatabase(t *testing.T) {
	url := os.Getenv("TALENTHUB_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TALENTHUB_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	store, err := Open(ctx, url)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	userID, err := id.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	email := userID + "@example.com"
	if err := store.CreateUser(ctx, user.User{ID: userID, Email: email, PasswordHash: "hash"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := store.CreateUser(ctx, user.User{ID: userID + "x", Email: email, PasswordHash: "hash"}); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate err = %v, want ErrAlreadyExists", err)
	}

	now := time.Now().UTC()
	session := storage.Session{ID: userID, AccountID: userID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := store.RevokeSession(ctx, userID, now); err != nil {
		t.Fatalf("revoke session: %v", err)
	}
	got, err := store.GetSession(ctx, userID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.Active(now) {
		t.Fatal("expected revoked session")
	}
}
