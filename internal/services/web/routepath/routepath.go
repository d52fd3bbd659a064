// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root                         = "/"
	Health                       = "/up"
	Live                         = "/live"
	StaticPrefix                 = "/static/"
	LanguagePrefix               = "/lang/"
	LanguagePattern              = LanguagePrefix + "{code}"
	JobsPrefix                   = "/jobs/"
	JobPattern                   = JobsPrefix + "{id}"
	JobsSearch                   = "/jobs/search"
	JobsLocationPrefix           = "/jobs/location/"
	JobsLocationPattern          = JobsLocationPrefix + "{location}"
	SubmitResume                 = "/submit-resume"
	Login                        = "/dashabi/login"
	Logout                       = "/logout"
	Dashboard                    = "/dashabi/dashboard"
	DashboardPrefix              = "/dashabi/dashboard/"
	DashboardJobs                = DashboardPrefix + "jobs"
	DashboardJobDeletePattern    = DashboardPrefix + "jobs/{id}/delete"
	DashboardResumeStatusPattern = DashboardPrefix + "resumes/{id}/status"
	DashboardContact             = DashboardPrefix + "contact"
	ReturnToParam                = "return_to"
	ModeParam                    = "mode"
	ModeRegister                 = "register"
	SearchParam                  = "q"
)

// Job returns the job detail route.
func Job(jobID string) string {
	return JobsPrefix + escapeSegment(jobID)
}

// JobsLocation returns the listing route for postings matching location.
func JobsLocation(location string) string {
	return JobsLocationPrefix + escapeSegment(location)
}

// Language returns the language selection route.
func Language(code string) string {
	return LanguagePrefix + escapeSegment(code)
}

// DashboardJobDelete returns the posting delete route.
func DashboardJobDelete(jobID string) string {
	return DashboardPrefix + "jobs/" + escapeSegment(jobID) + "/delete"
}

// DashboardResumeStatus returns the resume status update route.
func DashboardResumeStatus(resumeID string) string {
	return DashboardPrefix + "resumes/" + escapeSegment(resumeID) + "/status"
}

// LoginReturning returns the login route carrying a return target.
func LoginReturning(returnTo string) string {
	returnTo = strings.TrimSpace(returnTo)
	if returnTo == "" {
		return Login
	}
	return Login + "?" + ReturnToParam + "=" + url.QueryEscape(returnTo)
}

// RegisterReturning returns the login route in register mode.
func RegisterReturning(returnTo string) string {
	values := url.Values{}
	values.Set(ModeParam, ModeRegister)
	if returnTo = strings.TrimSpace(returnTo); returnTo != "" {
		values.Set(ReturnToParam, returnTo)
	}
	return Login + "?" + values.Encode()
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
