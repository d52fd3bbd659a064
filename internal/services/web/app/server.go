package app

import (
	"fmt"
	"net/http"
)

// BuildRootHandler composes a root mux using the configured module groups
// and any extra routes.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	composed, err := Compose(ComposeInput{
		ResolveViewer:    cfg.ResolveViewer,
		HasSession:       cfg.HasSession,
		Forbidden:        cfg.Forbidden,
		NotFound:         cfg.NotFound,
		PublicModules:    cfg.PublicModules,
		ProtectedModules: cfg.ProtectedModules,
		RequestPolicy:    cfg.RequestPolicy,
	})
	if err != nil {
		return nil, err
	}
	if len(cfg.Extra) == 0 {
		return composed, nil
	}
	root := http.NewServeMux()
	for pattern, handler := range cfg.Extra {
		if handler == nil {
			return nil, fmt.Errorf("extra route %q has nil handler", pattern)
		}
		if err := validatePattern(pattern); err != nil {
			return nil, fmt.Errorf("extra route %q: %w", pattern, err)
		}
		root.Handle(pattern, handler)
	}
	root.Handle("/", composed)
	return root, nil
}
