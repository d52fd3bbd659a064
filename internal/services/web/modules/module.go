// Package modules defines web module registry helpers.
package modules

import (
	"github.com/louisbranch/talenthub/internal/platform/ratelimit"
	"github.com/louisbranch/talenthub/internal/services/auth/events"
	module "github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/modules/admin"
	"github.com/louisbranch/talenthub/internal/services/web/modules/authflow"
	"github.com/louisbranch/talenthub/internal/services/web/modules/jobs"
	"github.com/louisbranch/talenthub/internal/services/web/modules/landing"
	"github.com/louisbranch/talenthub/internal/services/web/modules/resume"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the gateways and shared handler base required to
// compose the web module registry. Each gateway field is typed as the narrow
// interface defined by the consuming module, so modules cannot reach
// storage they were not given.
type Dependencies struct {
	Base modulehandler.Base

	// Landing page aggregator gateways.
	SessionChecker landing.SessionChecker
	JobLister      landing.JobLister
	JobCounter     landing.JobCounter
	ContactLoader  landing.ContactLoader
	Broker         events.Broker
	Locations      []landing.Location

	// Jobs module gateway.
	JobReader jobs.JobReader

	// Resume module gateways.
	SessionResolver resume.SessionResolver
	ResumeWriter    resume.ResumeWriter

	// Auth flow module gateways.
	Authenticator authflow.Authenticator
	Cookies       authflow.SessionCookies
	Limiter       ratelimit.Limiter

	// Admin dashboard gateway.
	ListingStore admin.ListingStore
}
