// Package landing serves the landing page and its live update socket.
package landing

import (
	"net/http"

	"github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

// Option configures a landing module.
type Option func(*Module)

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithAggregator sets the page data aggregator.
func WithAggregator(a *Aggregator) Option {
	return func(m *Module) { m.aggregator = a }
}

// Module provides the landing page routes.
type Module struct {
	base       modulehandler.Base
	aggregator *Aggregator
}

// New returns a landing module configured by opts. Without an aggregator
// the page renders with empty listings.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "landing" }

// Mount wires the landing page and live socket.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	aggregator := m.aggregator
	if aggregator == nil {
		aggregator = NewAggregator(Config{})
	}
	registerRoutes(mux, newHandlers(m.base, aggregator))
	return module.Mount{
		Patterns: []string{routepath.Root + "{$}", routepath.Live},
		Handler:  mux,
	}, nil
}
