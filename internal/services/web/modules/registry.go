package modules

import (
	"github.com/louisbranch/talenthub/internal/services/web/modules/admin"
	"github.com/louisbranch/talenthub/internal/services/web/modules/authflow"
	"github.com/louisbranch/talenthub/internal/services/web/modules/jobs"
	"github.com/louisbranch/talenthub/internal/services/web/modules/landing"
	"github.com/louisbranch/talenthub/internal/services/web/modules/language"
	"github.com/louisbranch/talenthub/internal/services/web/modules/resume"
)

// DefaultPublicModules returns the modules reachable without an admin
// session. The resume module gates itself on a signed-in session.
func DefaultPublicModules(deps Dependencies) []Module {
	aggregator := landing.NewAggregator(landing.Config{
		Sessions:  deps.SessionChecker,
		Jobs:      deps.JobLister,
		Counter:   deps.JobCounter,
		Contact:   deps.ContactLoader,
		Broker:    deps.Broker,
		Locations: deps.Locations,
	})
	return []Module{
		landing.New(landing.WithBase(deps.Base), landing.WithAggregator(aggregator)),
		jobs.New(jobs.WithBase(deps.Base), jobs.WithReader(deps.JobReader)),
		language.New(language.WithBase(deps.Base)),
		resume.New(resume.WithBase(deps.Base), resume.WithSessions(deps.SessionResolver), resume.WithWriter(deps.ResumeWriter)),
		authflow.New(
			authflow.WithBase(deps.Base),
			authflow.WithAuthenticator(deps.Authenticator),
			authflow.WithCookies(deps.Cookies),
			authflow.WithLimiter(deps.Limiter),
		),
	}
}

// DefaultProtectedModules returns the modules that require an admin viewer.
func DefaultProtectedModules(deps Dependencies) []Module {
	return []Module{
		admin.New(admin.WithBase(deps.Base), admin.WithStore(deps.ListingStore)),
	}
}
