// Package sessioncookie signs the session id into the browser cookie and
// reads it back.
package sessioncookie

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/talenthub/internal/services/web/platform/requestmeta"
)

// Name is the canonical web session cookie name.
const Name = "talenthub_session"

// MinSecretLength is the shortest accepted signing secret in bytes.
const MinSecretLength = 32

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Codec writes and verifies HS256-signed session cookies.
type Codec struct {
	secret []byte
	policy requestmeta.Policy
	now    func() time.Time
}

// NewCodec builds a Codec for secret.
func NewCodec(secret string, policy requestmeta.Policy) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)
	}
	return &Codec{secret: []byte(secret), policy: policy, now: time.Now}, nil
}

// Write sets a cookie carrying sessionID until expiresAt.
func (c *Codec) Write(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time) error {
	if w == nil {
		return fmt.Errorf("response writer is required")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(c.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return fmt.Errorf("sign session cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    signed,
		Path:     "/",
		Expires:  expiresAt.UTC(),
		HttpOnly: true,
		Secure:   c.policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the session id from a valid, unexpired cookie.
func (c *Codec) Read(r *http.Request) (string, bool) {
	if c == nil || r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil {
		return "", false
	}
	sessionID, err := c.Verify(cookie.Value)
	if err != nil {
		return "", false
	}
	return sessionID, true
}

// Verify checks a signed token and returns its session id.
func (c *Codec) Verify(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("session token is required")
	}
	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	if parsed.ExpiresAt == nil {
		return "", errors.New("session token exp is required")
	}
	if !parsed.ExpiresAt.Time.After(c.now()) {
		return "", errors.New("session token is expired")
	}
	sessionID := strings.TrimSpace(parsed.SessionID)
	if sessionID == "" {
		return "", errors.New("session token sid is required")
	}
	return sessionID, nil
}

// Clear expires the session cookie.
func (c *Codec) Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
