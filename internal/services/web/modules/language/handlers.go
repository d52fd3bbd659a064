package language

import (
	"net/http"

	platformi18n "github.com/louisbranch/talenthub/internal/platform/i18n"
	authapp "github.com/louisbranch/talenthub/internal/services/auth/app"
	"github.com/louisbranch/talenthub/internal/services/shared/i18nhttp"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

type handlers struct {
	modulehandler.Base
}

// handleSelect stores the language and sends the visitor back where they
// came from. Only exact supported codes are accepted.
func (h handlers) handleSelect(w http.ResponseWriter, r *http.Request) {
	code := platformi18n.Code(r.PathValue("code"))
	if !code.Valid() {
		h.WriteNotFound(w, r)
		return
	}
	i18nhttp.SetLanguageCookie(w, code)
	target := authapp.SanitizeReturnTo(r.URL.Query().Get(routepath.ReturnToParam))
	if target == "" {
		target = routepath.Root
	}
	h.Redirect(w, r, target)
}
