package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

// ErrorPageTitle returns the heading for an error page with statusCode.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if statusCode == http.StatusNotFound {
		return T(loc, "errors.title.notFound")
	}
	return T(loc, "errors.title.server")
}

// ErrorMessageKey returns the default message key for statusCode.
func ErrorMessageKey(statusCode int) string {
	switch statusCode {
	case http.StatusNotFound:
		return "errors.message.notFound"
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "errors.message.badRequest"
	case http.StatusForbidden, http.StatusUnauthorized:
		return "errors.message.forbidden"
	case http.StatusServiceUnavailable:
		return "errors.message.unavailable"
	default:
		return "errors.message.server"
	}
}

// ErrorPage renders a localized error body. An empty messageKey uses the
// default for statusCode.
func ErrorPage(page PageContext, statusCode int, messageKey string) templ.Component {
	if messageKey == "" {
		messageKey = ErrorMessageKey(statusCode)
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="error-page">`)
		h.element("h1", "", ErrorPageTitle(statusCode, page.Loc))
		h.element("p", "", T(page.Loc, messageKey))
		h.raw(`<a class="button"`)
		h.href(routepath.Root)
		h.raw(">")
		h.text(T(page.Loc, "errors.backHome"))
		h.raw("</a></section>")
		return h.err
	})
}
