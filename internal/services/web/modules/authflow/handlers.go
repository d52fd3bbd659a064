package authflow

import (
	"errors"
	"log"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/talenthub/internal/platform/errors"
	"github.com/louisbranch/talenthub/internal/platform/requestctx"
	"github.com/louisbranch/talenthub/internal/services/auth/user"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/talenthub/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
	cookies SessionCookies
	flows   *flowSet
}

func newHandlers(s service, base modulehandler.Base, cookies SessionCookies) handlers {
	return handlers{Base: base, service: s, cookies: cookies, flows: newFlowSet()}
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	form := formFromQuery(r)
	if viewer := h.Viewer(r); viewer.SignedIn() {
		role := user.RoleMember
		if viewer.Admin {
			role = user.RoleAdmin
		}
		h.Redirect(w, r, h.service.policy.RedirectTarget(user.User{ID: viewer.UserID, Email: viewer.Email, Role: role}, form.ReturnTo))
		return
	}
	h.renderForm(w, r, http.StatusOK, form)
}

func (h handlers) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	form := formFromQuery(r)
	if err := r.ParseForm(); err != nil {
		form.ErrorKey = errorKeyGeneric
		h.renderForm(w, r, http.StatusBadRequest, form)
		return
	}
	form.Email = strings.TrimSpace(r.PostForm.Get("email"))

	clientID := strings.TrimSpace(requestctx.ClientIDFromContext(r.Context()))
	flow := h.flows.acquire(clientID)
	identity, err := h.service.run(r.Context(), flow, attempt{
		Register: form.Register,
		Email:    form.Email,
		Password: r.PostForm.Get("password"),
		ReturnTo: form.ReturnTo,
		ClientID: clientID,
		ClientIP: h.Policy().ClientIP(r),
	})
	if errors.Is(err, ErrFlowBusy) {
		form.ErrorKey = errorKeyGeneric
		h.renderForm(w, r, http.StatusConflict, form)
		return
	}
	if err != nil {
		form.ErrorKey = flow.ErrorKey()
		flow.Acknowledge()
		h.flows.release(clientID, flow)
		h.renderForm(w, r, failureStatus(err), form)
		return
	}
	h.flows.release(clientID, flow)
	if h.cookies == nil {
		log.Printf("authflow: session cookie codec is not configured")
		form.ErrorKey = errorKeyGeneric
		h.renderForm(w, r, http.StatusInternalServerError, form)
		return
	}
	if err := h.cookies.Write(w, r, identity.Session.ID, identity.Session.ExpiresAt); err != nil {
		log.Printf("authflow: write session cookie failed: %v", err)
		form.ErrorKey = errorKeyGeneric
		h.renderForm(w, r, http.StatusInternalServerError, form)
		return
	}
	h.Redirect(w, r, flow.Target())
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if h.cookies != nil {
		if sessionID, ok := h.cookies.Read(r); ok {
			h.service.signOut(r.Context(), sessionID)
		}
		h.cookies.Clear(w, r)
	}
	h.Redirect(w, r, routepath.Root)
}

func (h handlers) renderForm(w http.ResponseWriter, r *http.Request, status int, form webtemplates.AuthFormView) {
	page := h.PageContext(w, r)
	titleKey := "auth.login"
	if form.Register {
		titleKey = "auth.register"
	}
	h.WritePage(w, r, page, webtemplates.T(page.Loc, titleKey), status, webtemplates.AuthFormPage(page, form))
}

// formFromQuery reads the mode and return target, which travel in the
// query string of both the page and the form action.
func formFromQuery(r *http.Request) webtemplates.AuthFormView {
	query := r.URL.Query()
	form := webtemplates.AuthFormView{
		Register: query.Get(routepath.ModeParam) == routepath.ModeRegister,
		ReturnTo: strings.TrimSpace(query.Get(routepath.ReturnToParam)),
	}
	form.SubtitleKey = subtitleKey(form)
	return form
}

func subtitleKey(form webtemplates.AuthFormView) string {
	switch {
	case form.ReturnTo == routepath.SubmitResume:
		return "auth.resumeAccess"
	case form.Register:
		return "auth.createAccount"
	default:
		return "auth.adminAccess"
	}
}

func failureStatus(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindRateLimited:
		return http.StatusTooManyRequests
	case apperrors.KindUnauthorized, apperrors.KindInvalidInput, apperrors.KindConflict:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
