// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	flashnotice "github.com/louisbranch/talenthub/internal/services/web/platform/flash"
	"github.com/louisbranch/talenthub/internal/services/web/platform/httpx"
	"github.com/louisbranch/talenthub/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/talenthub/internal/services/web/platform/webctx"
	webtemplates "github.com/louisbranch/talenthub/internal/services/web/templates"
)

// Page describes a full page response.
type Page struct {
	Context    webtemplates.PageContext
	Title      string
	StatusCode int
	Body       templ.Component
}

// NewPageContext collects the layout state shared by every page: localizer,
// current location, viewer and any pending flash notice.
func NewPageContext(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, policy requestmeta.Policy) webtemplates.PageContext {
	page := webtemplates.PageContext{Loc: loc}
	if r == nil {
		return page
	}
	if r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	page.Viewer = webctx.ViewerFromRequest(r)
	page.Notice = resolveFlashNotice(w, r, loc, policy)
	return page
}

func resolveFlashNotice(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, policy requestmeta.Policy) *webtemplates.Notice {
	notice, ok := flashnotice.ReadAndClear(w, r, policy)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(webtemplates.T(loc, notice.Key))
	if message == "" {
		return nil
	}
	return &webtemplates.Notice{Kind: string(notice.Kind), Message: message}
}

// WritePage renders page inside the site layout. Rendering happens into a
// buffer so a template failure never leaves a half-written response.
func WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = templ.NopComponent
	}
	var buf bytes.Buffer
	layout := webtemplates.Layout(page.Context, page.Title)
	if err := layout.Render(templ.WithChildren(httpx.RequestContext(r), body), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}
