// Package webctx provides shared web request context helpers.
package webctx

import (
	"context"
	"net/http"

	"github.com/louisbranch/talenthub/internal/platform/requestctx"
	module "github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/platform/httpx"
)

type viewerContextKey struct{}

// WithViewer returns ctx carrying viewer.
func WithViewer(ctx context.Context, viewer module.Viewer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, viewerContextKey{}, viewer)
	if viewer.SignedIn() {
		ctx = requestctx.WithUserID(ctx, viewer.UserID)
	}
	return ctx
}

// ViewerFromContext returns the viewer stored in ctx, or the anonymous viewer.
func ViewerFromContext(ctx context.Context) module.Viewer {
	if ctx == nil {
		return module.Viewer{}
	}
	viewer, _ := ctx.Value(viewerContextKey{}).(module.Viewer)
	return viewer
}

// ViewerFromRequest is ViewerFromContext for r.
func ViewerFromRequest(r *http.Request) module.Viewer {
	if r == nil {
		return module.Viewer{}
	}
	return ViewerFromContext(r.Context())
}

// ResolveViewer runs resolve once per request and stores the result in the
// request context for every downstream handler.
func ResolveViewer(resolve module.ResolveViewer) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r == nil || resolve == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), resolve(r))))
		})
	}
}
