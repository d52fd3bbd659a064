package jobs

import (
	"log"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/talenthub/internal/platform/errors"
	"github.com/louisbranch/talenthub/internal/services/listing/storage"
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

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	page := h.PageContext(w, r)
	job, err := h.service.job(r.Context(), r.PathValue("id"))
	if err != nil {
		if apperrors.HTTPStatus(err) != http.StatusNotFound {
			log.Printf("jobs: load job failed id=%q: %v", r.PathValue("id"), err)
		}
		h.WriteError(w, r, page, err)
		return
	}
	card := jobCard(job)
	h.WritePage(w, r, page, job.Title, http.StatusOK, webtemplates.JobDetailPage(page, card))
}

func (h handlers) handleLocation(w http.ResponseWriter, r *http.Request) {
	page := h.PageContext(w, r)
	location := strings.TrimSpace(r.PathValue("location"))
	jobs, err := h.service.jobsAt(r.Context(), location)
	if err != nil {
		log.Printf("jobs: list location failed location=%q: %v", location, err)
		h.WriteError(w, r, page, err)
		return
	}
	cards := make([]webtemplates.JobCard, 0, len(jobs))
	for _, job := range jobs {
		cards = append(cards, jobCard(job))
	}
	title := webtemplates.T(page.Loc, "jobs.locationTitle") + " " + location
	h.WritePage(w, r, page, title, http.StatusOK, webtemplates.LocationJobsPage(page, location, cards))
}

// handleSearch sends the hero search box to the location listing.
func (h handlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get(routepath.SearchParam))
	if query == "" {
		h.Redirect(w, r, routepath.Root)
		return
	}
	h.Redirect(w, r, routepath.JobsLocation(query))
}

func jobCard(job storage.JobPosting) webtemplates.JobCard {
	return webtemplates.JobCard{
		ID:           job.ID,
		Title:        job.Title,
		Salary:       job.Salary,
		WorkingHours: job.WorkingHours,
		Description:  job.Description,
		Posted:       job.CreatedAt,
	}
}
