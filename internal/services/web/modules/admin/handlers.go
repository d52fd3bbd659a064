package admin

import (
	"errors"
	"log"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/talenthub/internal/platform/errors"
	"github.com/louisbranch/talenthub/internal/services/listing/storage"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/talenthub/internal/services/web/templates"
)

const noticeSaved = "admin.notice.saved"

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, http.StatusOK, webtemplates.JobDraft{}, "")
}

func (h handlers) redirectDashboard(w http.ResponseWriter, r *http.Request) {
	h.Redirect(w, r, routepath.Dashboard)
}

func (h handlers) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, h.PageContext(w, r), apperrors.E(apperrors.KindInvalidInput, "parse job form"))
		return
	}
	draft := webtemplates.JobDraft{
		Title:        strings.TrimSpace(r.PostForm.Get("title")),
		Salary:       strings.TrimSpace(r.PostForm.Get("salary")),
		WorkingHours: strings.TrimSpace(r.PostForm.Get("working_hours")),
		Description:  strings.TrimSpace(r.PostForm.Get("description")),
	}
	err := h.service.createJob(r.Context(), storage.JobPosting{
		Title:        draft.Title,
		Salary:       draft.Salary,
		WorkingHours: draft.WorkingHours,
		Description:  draft.Description,
	})
	switch {
	case err == nil:
		h.RedirectWithNotice(w, r, routepath.Dashboard, noticeSaved)
	case errors.Is(err, errInvalidJob):
		h.renderDashboard(w, r, http.StatusUnprocessableEntity, draft, apperrors.LocalizationKey(err))
	default:
		h.writeFailure(w, r, "create job", err)
	}
}

func (h handlers) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := h.service.deleteJob(r.Context(), r.PathValue("id")); err != nil {
		h.writeFailure(w, r, "delete job", err)
		return
	}
	h.RedirectWithNotice(w, r, routepath.Dashboard, noticeSaved)
}

func (h handlers) handleResumeStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, h.PageContext(w, r), apperrors.E(apperrors.KindInvalidInput, "parse status form"))
		return
	}
	if err := h.service.setResumeStatus(r.Context(), r.PathValue("id"), r.PostForm.Get("status")); err != nil {
		h.writeFailure(w, r, "update resume status", err)
		return
	}
	h.RedirectWithNotice(w, r, routepath.Dashboard, noticeSaved)
}

func (h handlers) handleContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, h.PageContext(w, r), apperrors.E(apperrors.KindInvalidInput, "parse contact form"))
		return
	}
	if err := h.service.saveContact(r.Context(), r.PostForm.Get("whatsapp_link"), r.PostForm.Get("telegram_link")); err != nil {
		h.writeFailure(w, r, "save contact settings", err)
		return
	}
	h.RedirectWithNotice(w, r, routepath.Dashboard, noticeSaved)
}

func (h handlers) writeFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	if status := apperrors.HTTPStatus(err); status >= http.StatusInternalServerError {
		log.Printf("admin: %s failed: %v", op, err)
	}
	h.WriteError(w, r, h.PageContext(w, r), err)
}

func (h handlers) renderDashboard(w http.ResponseWriter, r *http.Request, status int, draft webtemplates.JobDraft, errorKey string) {
	page := h.PageContext(w, r)
	data, err := h.service.load(r.Context())
	if err != nil {
		log.Printf("admin: load dashboard failed: %v", err)
		h.WriteError(w, r, page, err)
		return
	}
	page.Contact = webtemplates.ContactLinks{WhatsApp: data.Contact.WhatsAppLink, Telegram: data.Contact.TelegramLink}
	h.WritePage(w, r, page, webtemplates.T(page.Loc, "admin.title"), status, webtemplates.AdminDashboardPage(page, adminView(data, draft, errorKey)))
}

func adminView(data dashboard, draft webtemplates.JobDraft, errorKey string) webtemplates.AdminView {
	view := webtemplates.AdminView{
		Jobs:     make([]webtemplates.JobCard, 0, len(data.Jobs)),
		Resumes:  make([]webtemplates.ResumeRow, 0, len(data.Resumes)),
		Contact:  webtemplates.ContactLinks{WhatsApp: data.Contact.WhatsAppLink, Telegram: data.Contact.TelegramLink},
		Draft:    draft,
		ErrorKey: errorKey,
	}
	for _, status := range storage.ResumeStatuses() {
		view.Statuses = append(view.Statuses, string(status))
	}
	for _, job := range data.Jobs {
		view.Jobs = append(view.Jobs, webtemplates.JobCard{
			ID:           job.ID,
			Title:        job.Title,
			Salary:       job.Salary,
			WorkingHours: job.WorkingHours,
			Description:  job.Description,
			Posted:       job.CreatedAt,
		})
	}
	for _, resume := range data.Resumes {
		view.Resumes = append(view.Resumes, webtemplates.ResumeRow{
			ID:          resume.ID,
			FullName:    resume.FullName,
			Email:       resume.Email,
			Phone:       resume.Phone,
			Education:   resume.Education,
			Experience:  resume.Experience,
			Skills:      resume.Skills,
			CoverLetter: resume.CoverLetter,
			Status:      string(resume.Status),
			Submitted:   resume.SubmittedAt,
		})
	}
	return view
}
