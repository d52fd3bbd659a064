package templates

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

// ResumeRow is one submission in the dashboard table.
type ResumeRow struct {
	ID          string
	FullName    string
	Email       string
	Phone       string
	Education   string
	Experience  string
	Skills      string
	CoverLetter string
	Status      string
	Submitted   time.Time
}

// JobDraft holds the values of the new posting form.
type JobDraft struct {
	Title        string
	Salary       string
	WorkingHours string
	Description  string
}

// AdminView is everything the dashboard renders.
type AdminView struct {
	Jobs     []JobCard
	Resumes  []ResumeRow
	Statuses []string
	Contact  ContactLinks
	Draft    JobDraft
	ErrorKey string
}

// AdminDashboardPage renders postings, resumes and contact settings.
func AdminDashboardPage(page PageContext, view AdminView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		loc := page.Loc
		h.raw(`<section class="admin">`)
		h.element("h1", "", T(loc, "admin.title"))
		if view.ErrorKey != "" {
			h.raw(`<p class="form-error" role="alert">`)
			h.text(T(loc, view.ErrorKey))
			h.raw("</p>")
		}
		h.render(adminJobs(loc, view))
		h.render(adminResumes(loc, view))
		h.render(adminContact(loc, view.Contact))
		h.raw("</section>")
		return h.err
	})
}

func adminJobs(loc Localizer, view AdminView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="admin-jobs">`)
		h.element("h2", "", T(loc, "admin.jobs.title"))
		h.raw(`<form class="admin-form" method="post"`)
		h.attr("action", routepath.DashboardJobs)
		h.raw(">")
		for _, field := range []struct {
			name  string
			key   string
			value string
		}{
			{name: "title", key: "admin.jobs.titleField", value: view.Draft.Title},
			{name: "salary", key: "jobs.salary", value: view.Draft.Salary},
			{name: "working_hours", key: "jobs.workingHours", value: view.Draft.WorkingHours},
		} {
			h.raw(`<label class="field"><span>`)
			h.text(T(loc, field.key))
			h.raw(`</span><input type="text"`)
			h.attr("name", field.name)
			h.attr("value", field.value)
			h.raw("></label>")
		}
		h.raw(`<label class="field"><span>`)
		h.text(T(loc, "jobs.description"))
		h.raw(`</span><textarea name="description" rows="6">`)
		h.text(view.Draft.Description)
		h.raw(`</textarea></label><button type="submit">`)
		h.text(T(loc, "admin.jobs.create"))
		h.raw("</button></form>")

		if len(view.Jobs) == 0 {
			h.element("p", "empty", T(loc, "admin.jobs.empty"))
		} else {
			h.raw(`<ul class="admin-list">`)
			for _, job := range view.Jobs {
				h.raw("<li><a")
				h.href(routepath.Job(job.ID))
				h.raw(">")
				h.text(job.Title)
				h.raw("</a> ")
				h.element("span", "muted", formatPosted(job))
				h.raw(`<form method="post" class="inline"`)
				h.attr("action", routepath.DashboardJobDelete(job.ID))
				h.raw(`><button type="submit" class="danger">`)
				h.text(T(loc, "admin.jobs.delete"))
				h.raw("</button></form></li>")
			}
			h.raw("</ul>")
		}
		h.raw("</section>")
		return h.err
	})
}

func adminResumes(loc Localizer, view AdminView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="admin-resumes">`)
		h.element("h2", "", T(loc, "admin.resumes.title"))
		if len(view.Resumes) == 0 {
			h.element("p", "empty", T(loc, "admin.resumes.empty"))
			h.raw("</section>")
			return h.err
		}
		for _, resume := range view.Resumes {
			h.raw(`<details class="resume-row"><summary>`)
			h.text(resume.FullName + " <" + resume.Email + ">")
			h.raw(" ")
			h.element("span", "status status-"+resume.Status, T(loc, "admin.status."+resume.Status))
			h.raw("</summary><dl>")
			for _, field := range []struct {
				key   string
				value string
			}{
				{key: "resume.phone", value: resume.Phone},
				{key: "resume.education", value: resume.Education},
				{key: "resume.experience", value: resume.Experience},
				{key: "resume.skills", value: resume.Skills},
				{key: "resume.coverLetter", value: resume.CoverLetter},
				{key: "admin.resumes.submitted", value: resume.Submitted.Format(postedDateLayout)},
			} {
				h.element("dt", "", T(loc, field.key))
				h.element("dd", "", field.value)
			}
			h.raw(`</dl><form method="post" class="inline"`)
			h.attr("action", routepath.DashboardResumeStatus(resume.ID))
			h.raw(`><label><span>`)
			h.text(T(loc, "admin.resumes.status"))
			h.raw(`</span><select name="status">`)
			for _, status := range view.Statuses {
				h.raw("<option")
				h.attr("value", status)
				if status == resume.Status {
					h.raw(" selected")
				}
				h.raw(">")
				h.text(T(loc, "admin.status."+status))
				h.raw("</option>")
			}
			h.raw(`</select></label><button type="submit">`)
			h.text(T(loc, "admin.resumes.update"))
			h.raw("</button></form></details>")
		}
		h.raw("</section>")
		return h.err
	})
}

func adminContact(loc Localizer, links ContactLinks) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="admin-contact">`)
		h.element("h2", "", T(loc, "admin.contact.title"))
		h.raw(`<form class="admin-form" method="post"`)
		h.attr("action", routepath.DashboardContact)
		h.raw(">")
		for _, field := range []struct {
			name  string
			key   string
			value string
		}{
			{name: "whatsapp_link", key: "admin.contact.whatsapp", value: links.WhatsApp},
			{name: "telegram_link", key: "admin.contact.telegram", value: links.Telegram},
		} {
			h.raw(`<label class="field"><span>`)
			h.text(T(loc, field.key))
			h.raw(`</span><input type="url"`)
			h.attr("name", field.name)
			h.attr("value", field.value)
			h.raw("></label>")
		}
		h.raw(`<button type="submit">`)
		h.text(T(loc, "admin.contact.save"))
		h.raw("</button></form></section>")
		return h.err
	})
}
