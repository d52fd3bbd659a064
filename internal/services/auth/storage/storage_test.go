package storage

import (
	"testing"
	"time"

	"github.com/louisbranch/talenthub/internal/services/auth/user"
)

func TestSessionActive(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	revokedAt := now.Add(-time.Minute)
	tests := []struct {
		name    string
		session Session
		want    bool
	}{
		{name: "active", session: Session{ExpiresAt: now.Add(time.Hour)}, want: true},
		{name: "expired", session: Session{ExpiresAt: now}, want: false},
		{name: "revoked", session: Session{ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt}, want: false},
	}
	for _, tc := range tests {
		if got := tc.session.Active(now); got != tc.want {
			t.Fatalf("%s: Active = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeUser(t *testing.T) {
	t.Parallel()

	got, err := NormalizeUser(user.User{ID: " u1 ", Email: " A@B.CO ", PasswordHash: "hash", Role: "boss"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.ID != "u1" || got.Email != "a@b.co" || got.Role != user.RoleMember {
		t.Fatalf("user = %+v", got)
	}
	if !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Fatal("expected updated at to default to created at")
	}
	if _, err := NormalizeUser(user.User{ID: "u1", Email: "a@b.co"}); err == nil {
		t.Fatal("expected missing hash error")
	}
}

func TestNormalizeSessionRequiresFutureExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	if _, err := NormalizeSession(Session{ID: "s", AccountID: "a", CreatedAt: now, ExpiresAt: now}); err == nil {
		t.Fatal("expected expiry error")
	}
	if _, err := NormalizeSession(Session{ID: "s", AccountID: "a", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}); err != nil {
		t.Fatalf("normalize: %v", err)
	}
}
