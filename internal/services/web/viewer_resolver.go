package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	authapp "github.com/louisbranch/talenthub/internal/services/auth/app"
	module "github.com/louisbranch/talenthub/internal/services/web/module"
)

// SessionResolver loads the account behind an active session id.
type SessionResolver interface {
	Session(ctx context.Context, sessionID string) (authapp.Identity, error)
}

// viewerResolver turns the session cookie into the request viewer.
type viewerResolver struct {
	cookies  SessionCookieReader
	sessions SessionResolver
	logger   *log.Logger
}

func (v viewerResolver) resolve(r *http.Request) module.Viewer {
	if r == nil || v.cookies == nil || v.sessions == nil {
		return module.Viewer{}
	}
	sessionID, ok := v.cookies.Read(r)
	if !ok || strings.TrimSpace(sessionID) == "" {
		return module.Viewer{}
	}
	identity, err := v.sessions.Session(r.Context(), sessionID)
	if err != nil {
		if !errors.Is(err, authapp.ErrSessionNotFound) && v.logger != nil {
			v.logger.Printf("resolve viewer session: %v", err)
		}
		return module.Viewer{}
	}
	return module.Viewer{
		UserID:    identity.User.ID,
		Email:     identity.User.Email,
		SessionID: identity.Session.ID,
		Admin:     identity.User.IsAdmin(),
	}
}
