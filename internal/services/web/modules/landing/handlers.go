package landing

import (
	"net/http"

	"github.com/louisbranch/talenthub/internal/platform/i18n"
	"github.com/louisbranch/talenthub/internal/platform/requestctx"
	"github.com/louisbranch/talenthub/internal/services/listing/storage"
	"github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/talenthub/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	aggregator *Aggregator
}

func newHandlers(base modulehandler.Base, aggregator *Aggregator) handlers {
	return handlers{Base: base, aggregator: aggregator}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	lang := h.Localize(w, r)
	page := pagerender.NewPageContext(w, r, lang, h.Policy())

	view := h.activate(r, lang)
	defer view.Close()
	if err := view.Wait(r.Context()); err != nil {
		return
	}
	snap := view.Snapshot()

	if !snap.Authenticated {
		page.Viewer = module.Viewer{}
	}
	page.Contact = webtemplates.ContactLinks{WhatsApp: snap.Contact.WhatsApp, Telegram: snap.Contact.Telegram}
	page.Live = true
	h.WritePage(w, r, page, webtemplates.T(lang, "site.name"), http.StatusOK, webtemplates.LandingPage(page, landingView(lang, snap)))
}

func (h handlers) activate(r *http.Request, lang *i18n.Context) *View {
	return h.aggregator.Activate(r.Context(), ActivateInput{
		SessionID: h.Viewer(r).SessionID,
		ClientID:  requestctx.ClientIDFromContext(r.Context()),
		Language:  lang,
	})
}

func landingView(lang *i18n.Context, state State) webtemplates.LandingView {
	return webtemplates.LandingView{
		Jobs:      jobCards(state.Jobs),
		Locations: locationCards(lang, state),
	}
}

func jobCards(jobs []storage.JobPosting) []webtemplates.JobCard {
	cards := make([]webtemplates.JobCard, 0, len(jobs))
	for _, job := range jobs {
		cards = append(cards, webtemplates.JobCard{
			ID:           job.ID,
			Title:        job.Title,
			Salary:       job.Salary,
			WorkingHours: job.WorkingHours,
			Description:  job.Description,
			Posted:       job.CreatedAt,
		})
	}
	return cards
}

// locationCards names each location in the view's current language.
func locationCards(lang *i18n.Context, state State) []webtemplates.LocationCard {
	cards := make([]webtemplates.LocationCard, 0, len(state.Locations))
	for _, location := range state.Locations {
		cards = append(cards, webtemplates.LocationCard{
			ID:         location.ID,
			Name:       lang.Resolve(state.Language, location.NameKey),
			ImageURL:   location.ImageURL,
			Count:      location.Count,
			CountLabel: state.Language.FormatCount(location.Count),
		})
	}
	return cards
}
