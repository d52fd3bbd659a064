package landing

import (
	"net/http"

	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleIndex)
	mux.Handle(http.MethodGet+" "+routepath.Live, h.liveServer())
}
