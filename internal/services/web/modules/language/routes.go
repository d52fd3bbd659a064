package language

import (
	"net/http"

	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.LanguagePattern, h.handleSelect)
	mux.HandleFunc(http.MethodGet+" "+routepath.LanguagePrefix+"{rest...}", h.WriteNotFound)
}
