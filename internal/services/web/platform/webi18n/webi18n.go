// Package webi18n builds the per-request Language Context used to render
// pages.
package webi18n

import (
	"net/http"

	"github.com/louisbranch/talenthub/internal/platform/i18n"
	"github.com/louisbranch/talenthub/internal/services/shared/i18nhttp"
)

// Localizer is the read side of a Language Context.
type Localizer interface {
	Language() i18n.Code
	T(path string) string
}

// Localize resolves the request language into a fresh Context. An explicit
// ?lang= selection is persisted on the response.
func Localize(w http.ResponseWriter, r *http.Request, table *i18n.Table) *i18n.Context {
	code, persist := i18nhttp.ResolveCode(r)
	if persist {
		i18nhttp.SetLanguageCookie(w, code)
	}
	return i18n.NewContext(table, code)
}

// T resolves path through loc, returning path when loc is nil.
func T(loc Localizer, path string) string {
	if loc == nil {
		return path
	}
	return loc.T(path)
}

// Language returns loc's language, or the base language when loc is nil.
func Language(loc Localizer) i18n.Code {
	if loc == nil {
		return i18n.Base
	}
	return loc.Language()
}
