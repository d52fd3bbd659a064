// Package web hosts the browser-facing job board.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/talenthub/internal/platform/errors"
	"github.com/louisbranch/talenthub/internal/platform/i18n"
	"github.com/louisbranch/talenthub/internal/platform/timeouts"
	webapp "github.com/louisbranch/talenthub/internal/services/web/app"
	"github.com/louisbranch/talenthub/internal/services/web/modules"
	"github.com/louisbranch/talenthub/internal/services/web/platform/clientid"
	"github.com/louisbranch/talenthub/internal/services/web/platform/httpx"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/platform/observability"
	"github.com/louisbranch/talenthub/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/talenthub/internal/services/web/platform/webctx"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
	webstatic "github.com/louisbranch/talenthub/internal/services/web/static"
)

// SessionCookieReader extracts the session id from a request.
type SessionCookieReader interface {
	Read(r *http.Request) (string, bool)
}

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr      string
	Catalog       *i18n.Table
	RequestPolicy requestmeta.Policy
	Sessions      SessionResolver
	Cookies       SessionCookieReader
	// Modules carries module gateways; Base is filled by NewHandler.
	Modules        modules.Dependencies
	Logger         *log.Logger
	TracerProvider trace.TracerProvider
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("translation catalog is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	base := modulehandler.NewBase(cfg.Catalog, cfg.RequestPolicy)
	deps := cfg.Modules
	deps.Base = base

	h, err := webapp.BuildRootHandler(webapp.Config{
		PublicModules:    modules.DefaultPublicModules(deps),
		ProtectedModules: modules.DefaultProtectedModules(deps),
		ResolveViewer:    webctx.ViewerFromRequest,
		HasSession:       hasSessionCookie(cfg.Cookies),
		Forbidden: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			base.WriteError(w, r, base.PageContext(w, r), apperrors.EK(apperrors.KindForbidden, "errors.message.forbidden", "admin role required"))
		}),
		NotFound:      http.HandlerFunc(base.WriteNotFound),
		RequestPolicy: cfg.RequestPolicy,
		Extra: map[string]http.Handler{
			routepath.StaticPrefix: http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))),
			routepath.Health:       http.HandlerFunc(handleHealth),
		},
	})
	if err != nil {
		return nil, err
	}

	resolver := viewerResolver{cookies: cfg.Cookies, sessions: cfg.Sessions, logger: logger}
	chained := httpx.Chain(h,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.SecurityHeaders(),
		clientid.Middleware(cfg.RequestPolicy),
		webctx.ResolveViewer(resolver.resolve),
		observability.RequestLogger(logger),
	)
	var otelOpts []otelhttp.Option
	if cfg.TracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(cfg.TracerProvider))
	}
	otelOpts = append(otelOpts, otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
		return r.Method + " " + r.URL.Path
	}))
	return otelhttp.NewHandler(chained, "talenthub.web", otelOpts...), nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httpx.MethodNotAllowed(http.MethodGet+", "+http.MethodHead)(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write([]byte("ok"))
	}
}

func hasSessionCookie(cookies SessionCookieReader) func(*http.Request) bool {
	return func(r *http.Request) bool {
		if cookies == nil {
			return false
		}
		_, ok := cookies.Read(r)
		return ok
	}
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("web listening on %s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
