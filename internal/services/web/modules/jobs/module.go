// Package jobs serves job detail pages and per-location listings.
package jobs

import (
	"net/http"

	"github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

// Option configures a jobs module.
type Option func(*Module)

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithReader sets the job reader.
func WithReader(r JobReader) Option {
	return func(m *Module) { m.reader = r }
}

// Module provides public job routes.
type Module struct {
	base   modulehandler.Base
	reader JobReader
}

// New returns a jobs module configured by opts.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "jobs" }

// Mount wires job route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.reader), m.base))
	return module.Mount{Patterns: []string{routepath.JobsPrefix}, Handler: mux}, nil
}
