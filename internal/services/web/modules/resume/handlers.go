package resume

import (
	"errors"
	"log"
	"net/http"

	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/talenthub/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	if !h.Viewer(r).SignedIn() {
		h.redirectToLogin(w, r)
		return
	}
	h.renderForm(w, r, http.StatusOK, webtemplates.ResumeFormView{})
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, r, http.StatusBadRequest, webtemplates.ResumeFormView{ErrorKey: "resume.submitFailed"})
		return
	}
	values := make(map[string]string, len(webtemplates.ResumeFields))
	for _, field := range webtemplates.ResumeFields {
		values[field.Name] = r.PostForm.Get(field.Name)
	}

	err := h.service.submit(r.Context(), h.Viewer(r).SessionID, values)
	var missing *missingFieldsError
	switch {
	case err == nil:
		h.RedirectWithNotice(w, r, routepath.SubmitResume, "resume.submitSuccess")
	case errors.Is(err, errSignInRequired):
		h.redirectToLogin(w, r)
	case errors.As(err, &missing):
		view := webtemplates.ResumeFormView{Values: values, Missing: make(map[string]bool, len(missing.fields))}
		for _, name := range missing.fields {
			view.Missing[name] = true
		}
		h.renderForm(w, r, http.StatusUnprocessableEntity, view)
	default:
		log.Printf("resume: submit failed: %v", err)
		h.renderForm(w, r, http.StatusInternalServerError, webtemplates.ResumeFormView{Values: values, ErrorKey: "resume.submitFailed"})
	}
}

func (h handlers) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	h.Redirect(w, r, routepath.LoginReturning(routepath.SubmitResume))
}

func (h handlers) renderForm(w http.ResponseWriter, r *http.Request, status int, view webtemplates.ResumeFormView) {
	page := h.PageContext(w, r)
	h.WritePage(w, r, page, webtemplates.T(page.Loc, "resume.submitTitle"), status, webtemplates.ResumeFormPage(page, view))
}
