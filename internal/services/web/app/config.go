package app

import (
	"net/http"

	module "github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/platform/requestmeta"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	PublicModules    []module.Module
	ProtectedModules []module.Module
	ResolveViewer    module.ResolveViewer
	HasSession       func(*http.Request) bool
	Forbidden        http.Handler
	NotFound         http.Handler
	RequestPolicy    requestmeta.Policy
	// Extra routes are registered after the modules, for assets and probes.
	Extra map[string]http.Handler
}
