package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

const postedDateLayout = "2006-01-02"

// JobDetailPage renders one posting with an apply link.
func JobDetailPage(page PageContext, job JobCard) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		loc := page.Loc
		h.raw(`<article class="job-detail"><a class="back"`)
		h.href(routepath.Root)
		h.raw(">")
		h.text(T(loc, "nav.back"))
		h.raw("</a>")
		h.element("h1", "", job.Title)
		h.raw("<dl>")
		for _, field := range []struct {
			key   string
			value string
		}{
			{key: "jobs.salary", value: job.Salary},
			{key: "jobs.workingHours", value: job.WorkingHours},
			{key: "jobs.posted", value: formatPosted(job)},
		} {
			if field.value == "" {
				continue
			}
			h.element("dt", "", T(loc, field.key))
			h.element("dd", "", field.value)
		}
		h.raw("</dl>")
		h.element("h2", "", T(loc, "jobs.description"))
		for _, paragraph := range strings.Split(job.Description, "\n") {
			if paragraph = strings.TrimSpace(paragraph); paragraph != "" {
				h.element("p", "", paragraph)
			}
		}
		h.raw(`<a class="button"`)
		h.href(routepath.SubmitResume)
		h.raw(">")
		h.text(T(loc, "jobs.apply"))
		h.raw("</a></article>")
		return h.err
	})
}

// LocationJobsPage lists postings that mention location.
func LocationJobsPage(page PageContext, location string, jobs []JobCard) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		loc := page.Loc
		h.raw(`<section class="location-jobs"><a class="back"`)
		h.href(routepath.Root)
		h.raw(">")
		h.text(T(loc, "jobs.backToJobs"))
		h.raw("</a>")
		h.element("h1", "", T(loc, "jobs.locationTitle")+" "+location)
		h.render(JobList(loc, jobs, "jobs.locationEmpty"))
		h.raw("</section>")
		return h.err
	})
}

func formatPosted(job JobCard) string {
	if job.Posted.IsZero() {
		return ""
	}
	return job.Posted.Format(postedDateLayout)
}
