// Package resume serves the signed-in resume submission form.
package resume

import (
	"net/http"

	"github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

// Option configures a resume module.
type Option func(*Module)

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithSessions sets the resolver used to re-check the session on submit.
func WithSessions(s SessionResolver) Option {
	return func(m *Module) { m.sessions = s }
}

// WithWriter sets the resume writer.
func WithWriter(w ResumeWriter) Option {
	return func(m *Module) { m.writer = w }
}

// Module provides the resume submission routes.
type Module struct {
	base     modulehandler.Base
	sessions SessionResolver
	writer   ResumeWriter
}

// New returns a resume module configured by opts.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "resume" }

// Mount wires resume route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.sessions, m.writer), m.base))
	return module.Mount{Patterns: []string{routepath.SubmitResume}, Handler: mux}, nil
}
