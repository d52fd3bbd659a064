package authflow

import (
	"context"
	"errors"
	"log"
	"strings"

	apperrors "github.com/louisbranch/talenthub/internal/platform/errors"
	"github.com/louisbranch/talenthub/internal/platform/ratelimit"
	authapp "github.com/louisbranch/talenthub/internal/services/auth/app"
	"github.com/louisbranch/talenthub/internal/services/auth/user"
)

// Authenticator owns accounts and sessions.
type Authenticator interface {
	SignUp(ctx context.Context, email string, password string) (user.User, error)
	SignIn(ctx context.Context, email string, password string, clientID string) (authapp.Identity, error)
	SignOut(ctx context.Context, sessionID string) error
}

const (
	errorKeyGeneric           = "auth.genericError"
	errorKeyEmailNotConfirmed = "auth.emailNotConfirmed"
	errorKeyTooManyAttempts   = "auth.tooManyAttempts"
)

var errTooManyAttempts = apperrors.EK(apperrors.KindRateLimited, errorKeyTooManyAttempts, "too many sign-in attempts")

// attempt is one submitted form.
type attempt struct {
	Register bool
	Email    string
	Password string
	ReturnTo string
	ClientID string
	ClientIP string
}

type service struct {
	auth    Authenticator
	limiter ratelimit.Limiter
	policy  authapp.Policy
}

func newService(auth Authenticator, limiter ratelimit.Limiter, policy authapp.Policy) service {
	return service{auth: auth, limiter: limiter, policy: policy}
}

// run drives flow through one attempt. Register creates the account and
// then signs in with the same credentials.
func (s service) run(ctx context.Context, flow *Flow, a attempt) (authapp.Identity, error) {
	if err := flow.begin(); err != nil {
		return authapp.Identity{}, err
	}
	identity, err := s.authenticate(ctx, a)
	if err != nil {
		key := errorKeyFor(err)
		if key == errorKeyGeneric {
			log.Printf("authflow: attempt failed register=%t: %v", a.Register, err)
		}
		flow.fail(key)
		return authapp.Identity{}, err
	}
	flow.succeed(s.policy.RedirectTarget(identity.User, a.ReturnTo))
	return identity, nil
}

func (s service) authenticate(ctx context.Context, a attempt) (authapp.Identity, error) {
	if s.auth == nil {
		return authapp.Identity{}, apperrors.E(apperrors.KindUnavailable, "authenticator is not configured")
	}
	if !s.allow(ctx, a) {
		return authapp.Identity{}, errTooManyAttempts
	}
	if a.Register {
		if _, err := s.auth.SignUp(ctx, a.Email, a.Password); err != nil {
			return authapp.Identity{}, err
		}
	}
	return s.auth.SignIn(ctx, a.Email, a.Password, a.ClientID)
}

// allow rate limits per client address and email. A missing limiter allows.
func (s service) allow(ctx context.Context, a attempt) bool {
	if s.limiter == nil {
		return true
	}
	return s.limiter.Allow(ctx, "login:"+strings.TrimSpace(a.ClientIP)+":"+user.NormalizeEmail(a.Email))
}

func (s service) signOut(ctx context.Context, sessionID string) {
	if s.auth == nil || strings.TrimSpace(sessionID) == "" {
		return
	}
	if err := s.auth.SignOut(ctx, sessionID); err != nil {
		log.Printf("authflow: sign out failed: %v", err)
	}
}

// errorKeyFor maps a failure to the only messages a visitor may see.
func errorKeyFor(err error) string {
	switch {
	case errors.Is(err, authapp.ErrEmailNotConfirmed):
		return errorKeyEmailNotConfirmed
	case errors.Is(err, errTooManyAttempts):
		return errorKeyTooManyAttempts
	default:
		return errorKeyGeneric
	}
}
