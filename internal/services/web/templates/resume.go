package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

// ResumeField describes one input of the resume form.
type ResumeField struct {
	Name      string
	LabelKey  string
	InputType string
	Multiline bool
}

// ResumeFields lists the resume form inputs in display order.
var ResumeFields = []ResumeField{
	{Name: "full_name", LabelKey: "resume.fullName", InputType: "text"},
	{Name: "email", LabelKey: "resume.email", InputType: "email"},
	{Name: "phone", LabelKey: "resume.phone", InputType: "tel"},
	{Name: "education", LabelKey: "resume.education", Multiline: true},
	{Name: "experience", LabelKey: "resume.experience", Multiline: true},
	{Name: "skills", LabelKey: "resume.skills", Multiline: true},
	{Name: "cover_letter", LabelKey: "resume.coverLetter", Multiline: true},
}

// ResumeFormView carries retained values and validation state.
type ResumeFormView struct {
	Values   map[string]string
	Missing  map[string]bool
	ErrorKey string
}

// ResumeFormPage renders the resume submission form.
func ResumeFormPage(page PageContext, view ResumeFormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		loc := page.Loc
		h.raw(`<section class="resume"><a class="back"`)
		h.href(routepath.Root)
		h.raw(">")
		h.text(T(loc, "nav.back"))
		h.raw("</a>")
		h.element("h1", "", T(loc, "resume.submitTitle"))
		if view.ErrorKey != "" {
			h.raw(`<p class="form-error" role="alert">`)
			h.text(T(loc, view.ErrorKey))
			h.raw("</p>")
		}
		h.raw(`<form class="resume-form" method="post"`)
		h.attr("action", routepath.SubmitResume)
		h.raw(">")
		for _, field := range ResumeFields {
			value := view.Values[field.Name]
			h.raw(`<label class="field"><span>`)
			h.text(T(loc, field.LabelKey))
			h.raw("</span>")
			if field.Multiline {
				h.raw(`<textarea rows="4" required`)
				h.attr("name", field.Name)
				if view.Missing[field.Name] {
					h.raw(` aria-invalid="true"`)
				}
				h.raw(">")
				h.text(value)
				h.raw("</textarea>")
			} else {
				h.raw("<input required")
				h.attr("type", field.InputType)
				h.attr("name", field.Name)
				h.attr("value", value)
				if view.Missing[field.Name] {
					h.raw(` aria-invalid="true"`)
				}
				h.raw(">")
			}
			if view.Missing[field.Name] {
				h.element("span", "field-error", T(loc, "resume.required"))
			}
			h.raw("</label>")
		}
		h.raw(`<button type="submit"`)
		h.attr("data-submitting", T(loc, "resume.submitting"))
		h.raw(">")
		h.text(T(loc, "resume.submit"))
		h.raw("</button></form></section>")
		return h.err
	})
}
