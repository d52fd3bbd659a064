// Package admin serves the dashboard for postings, resumes and contact
// links. Access control is applied by the web composer.
package admin

import (
	"net/http"

	"github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

// Option configures an admin module.
type Option func(*Module)

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithStore sets the listing store.
func WithStore(s ListingStore) Option {
	return func(m *Module) { m.store = s }
}

// Module provides admin dashboard routes.
type Module struct {
	base  modulehandler.Base
	store ListingStore
}

// New returns an admin module configured by opts.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "admin" }

// Mount wires dashboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.store), m.base))
	return module.Mount{Patterns: []string{routepath.Dashboard, routepath.DashboardPrefix}, Handler: mux}, nil
}
