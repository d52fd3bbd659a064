package resume

import (
	"net/http"

	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.SubmitResume, h.handleForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.SubmitResume, h.handleSubmit)
}
