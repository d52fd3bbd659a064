// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"
	"strings"
)

// Viewer is the signed-in state of the request, resolved once per request
// from the session cookie.
type Viewer struct {
	UserID    string
	Email     string
	SessionID string
	Admin     bool
}

// SignedIn reports whether the request carries an active session.
func (v Viewer) SignedIn() bool {
	return strings.TrimSpace(v.UserID) != ""
}

// ResolveViewer resolves viewer state for a request.
type ResolveViewer func(*http.Request) Viewer

// Mount describes the route patterns a module serves. Each pattern is
// registered on the root mux with Handler.
type Mount struct {
	Patterns []string
	Handler  http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
