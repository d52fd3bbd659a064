// Package authflow serves sign-in, registration and sign-out.
package authflow

import (
	"net/http"
	"time"

	"github.com/louisbranch/talenthub/internal/platform/ratelimit"
	authapp "github.com/louisbranch/talenthub/internal/services/auth/app"
	"github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

// SessionCookies reads and writes the signed session cookie.
type SessionCookies interface {
	Write(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time) error
	Read(r *http.Request) (string, bool)
	Clear(w http.ResponseWriter, r *http.Request)
}

// Option configures an authflow module.
type Option func(*Module)

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithAuthenticator sets the account and session service.
func WithAuthenticator(a Authenticator) Option {
	return func(m *Module) { m.auth = a }
}

// WithCookies sets the session cookie codec.
func WithCookies(c SessionCookies) Option {
	return func(m *Module) { m.cookies = c }
}

// WithLimiter throttles attempts per client address and email.
func WithLimiter(l ratelimit.Limiter) Option {
	return func(m *Module) { m.limiter = l }
}

// Module provides the auth routes.
type Module struct {
	base    modulehandler.Base
	auth    Authenticator
	cookies SessionCookies
	limiter ratelimit.Limiter
}

// New returns an authflow module configured by opts.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "authflow" }

// Mount wires auth route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	policy := authapp.Policy{DashboardPath: routepath.Dashboard, DefaultPath: routepath.Root}
	registerRoutes(mux, newHandlers(newService(m.auth, m.limiter, policy), m.base, m.cookies))
	return module.Mount{Patterns: []string{routepath.Login, routepath.Logout}, Handler: mux}, nil
}
