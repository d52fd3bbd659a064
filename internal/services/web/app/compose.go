package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/platform/httpx"
	"github.com/louisbranch/talenthub/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	// ResolveViewer returns the request viewer; protected modules require
	// an admin viewer.
	ResolveViewer module.ResolveViewer
	// HasSession reports whether the request carries a session cookie.
	HasSession func(*http.Request) bool
	Forbidden  http.Handler
	// NotFound answers paths no module claims.
	NotFound         http.Handler
	PublicModules    []module.Module
	ProtectedModules []module.Module
	RequestPolicy    requestmeta.Policy
}

// Compose builds a root HTTP handler from module groups.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.ResolveViewer == nil {
		input.ResolveViewer = func(*http.Request) module.Viewer { return module.Viewer{} }
	}
	if input.HasSession == nil {
		input.HasSession = func(*http.Request) bool { return false }
	}
	if input.Forbidden == nil {
		input.Forbidden = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
	seen := make(map[string]string)
	sameOrigin := requireCookieSessionSameOrigin(input.HasSession, input.RequestPolicy)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountPublicModule(root, feature, seen, sameOrigin); err != nil {
			return nil, err
		}
	}

	adminWrap := requireAdmin(input.ResolveViewer, input.Forbidden)
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		wrap := func(next http.Handler) http.Handler { return adminWrap(sameOrigin(next)) }
		if err := mountProtectedModule(root, feature, seen, wrap); err != nil {
			return nil, err
		}
	}

	if input.NotFound != nil {
		root.Handle("/", input.NotFound)
	}
	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if root == nil || feature == nil {
		return nil
	}
	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	for _, pattern := range mount.Patterns {
		if previous, ok := seen[pattern]; ok {
			return fmt.Errorf("module %q duplicates pattern %q owned by module %q", feature.ID(), pattern, previous)
		}
		seen[pattern] = feature.ID()
		root.Handle(pattern, handler)
	}
	return nil
}

func mountPublicModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, err := resolveMount(feature)
	if err != nil {
		return err
	}
	for _, pattern := range mount.Patterns {
		if isProtectedPattern(pattern) {
			return fmt.Errorf("module %q has protected pattern %q in public group", feature.ID(), pattern)
		}
	}
	return mountModule(root, feature, mount, seen, wrap)
}

func mountProtectedModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, err := resolveMount(feature)
	if err != nil {
		return err
	}
	for _, pattern := range mount.Patterns {
		if !isProtectedPattern(pattern) {
			return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.Dashboard, pattern)
		}
	}
	return mountModule(root, feature, mount, seen, wrap)
}

func isProtectedPattern(pattern string) bool {
	return pattern == routepath.Dashboard || strings.HasPrefix(pattern, routepath.DashboardPrefix)
}

func resolveMount(feature module.Module) (module.Mount, error) {
	if feature == nil {
		return module.Mount{}, fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if len(mount.Patterns) == 0 {
		return module.Mount{}, fmt.Errorf("mount module %q: patterns are required", feature.ID())
	}
	for _, pattern := range mount.Patterns {
		if err := validatePattern(pattern); err != nil {
			return module.Mount{}, fmt.Errorf("mount module %q has invalid pattern %q: %w", feature.ID(), pattern, err)
		}
	}
	if mount.Handler == nil {
		return module.Mount{}, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, nil
}

// validatePattern accepts path-only patterns; modules declare methods on
// their own mux.
func validatePattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("pattern is required")
	}
	if strings.TrimSpace(pattern) != pattern {
		return fmt.Errorf("pattern must not include surrounding whitespace")
	}
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("pattern must begin with /")
	}
	return nil
}

// requireAdmin sends anonymous visitors to the login page and answers
// signed-in non-admins with forbidden.
func requireAdmin(resolve module.ResolveViewer, forbidden http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			return http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := resolve(r)
			if !viewer.SignedIn() {
				httpx.WriteRedirect(w, r, routepath.LoginReturning(routepath.Dashboard))
				return
			}
			if !viewer.Admin {
				forbidden.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requireCookieSessionSameOrigin(hasSession func(*http.Request) bool, policy requestmeta.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || !hasSession(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !policy.HasSameOriginProof(r) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
