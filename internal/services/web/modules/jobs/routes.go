package jobs

import (
	"net/http"

	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.JobsSearch, h.handleSearch)
	mux.HandleFunc(http.MethodGet+" "+routepath.JobsLocationPattern, h.handleLocation)
	mux.HandleFunc(http.MethodGet+" "+routepath.JobPattern, h.handleDetail)
	mux.HandleFunc(http.MethodGet+" "+routepath.JobsPrefix+"{rest...}", h.WriteNotFound)
}
