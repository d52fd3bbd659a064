// Package modulehandler provides a composable base for web module handlers.
//
// Every module shares the same request plumbing for localization, viewer
// lookup, page rendering and error pages. Modules embed Base rather than
// duplicating it.
package modulehandler

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/talenthub/internal/platform/i18n"
	module "github.com/louisbranch/talenthub/internal/services/web/module"
	flashnotice "github.com/louisbranch/talenthub/internal/services/web/platform/flash"
	"github.com/louisbranch/talenthub/internal/services/web/platform/httpx"
	"github.com/louisbranch/talenthub/internal/services/web/platform/pagerender"
	"github.com/louisbranch/talenthub/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/talenthub/internal/services/web/platform/webctx"
	"github.com/louisbranch/talenthub/internal/services/web/platform/weberror"
	"github.com/louisbranch/talenthub/internal/services/web/platform/webi18n"
	webtemplates "github.com/louisbranch/talenthub/internal/services/web/templates"
)

// Base carries the translations and request policy used by module handlers.
type Base struct {
	catalog *i18n.Table
	policy  requestmeta.Policy
}

// NewBase builds a handler base.
func NewBase(catalog *i18n.Table, policy requestmeta.Policy) Base {
	return Base{catalog: catalog, policy: policy}
}

// Policy returns the request metadata policy.
func (b Base) Policy() requestmeta.Policy {
	return b.policy
}

// Catalog returns the translation table.
func (b Base) Catalog() *i18n.Table {
	return b.catalog
}

// Viewer returns the viewer resolved for r.
func (b Base) Viewer(r *http.Request) module.Viewer {
	return webctx.ViewerFromRequest(r)
}

// Localize returns a Language Context for r.
func (b Base) Localize(w http.ResponseWriter, r *http.Request) *i18n.Context {
	return webi18n.Localize(w, r, b.catalog)
}

// PageContext resolves the shared layout state for r.
func (b Base) PageContext(w http.ResponseWriter, r *http.Request) webtemplates.PageContext {
	return pagerender.NewPageContext(w, r, b.Localize(w, r), b.policy)
}

// WritePage renders body inside the site layout.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page webtemplates.PageContext, title string, statusCode int, body templ.Component) {
	if err := pagerender.WritePage(w, r, pagerender.Page{
		Context:    page,
		Title:      title,
		StatusCode: statusCode,
		Body:       body,
	}); err != nil {
		log.Printf("web: render %s failed: %v", requestPath(r), err)
		weberror.WriteAppError(w, r, http.StatusInternalServerError, page)
	}
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, page webtemplates.PageContext, err error) {
	weberror.WriteModuleError(w, r, err, page)
}

// WriteNotFound renders the 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.PageContext(w, r))
}

// Redirect sends a 303 to location.
func (b Base) Redirect(w http.ResponseWriter, r *http.Request, location string) {
	httpx.WriteRedirect(w, r, location)
}

// RedirectWithNotice stores a success notice for the next page and
// redirects to location.
func (b Base) RedirectWithNotice(w http.ResponseWriter, r *http.Request, location string, key string) {
	flashnotice.Write(w, r, flashnotice.NoticeSuccess(key), b.policy)
	httpx.WriteRedirect(w, r, location)
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
