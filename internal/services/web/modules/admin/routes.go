package admin

import (
	"net/http"

	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Dashboard, h.handleDashboard)
	mux.HandleFunc(http.MethodGet+" "+routepath.DashboardPrefix+"{$}", h.redirectDashboard)
	mux.HandleFunc(http.MethodPost+" "+routepath.DashboardJobs, h.handleCreateJob)
	mux.HandleFunc(http.MethodPost+" "+routepath.DashboardJobDeletePattern, h.handleDeleteJob)
	mux.HandleFunc(http.MethodPost+" "+routepath.DashboardResumeStatusPattern, h.handleResumeStatus)
	mux.HandleFunc(http.MethodPost+" "+routepath.DashboardContact, h.handleContact)
	mux.HandleFunc(http.MethodGet+" "+routepath.DashboardPrefix+"{rest...}", h.WriteNotFound)
}
