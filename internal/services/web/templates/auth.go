package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

// AuthFormView carries the sign-in/register form state.
type AuthFormView struct {
	Register    bool
	Email       string
	ReturnTo    string
	SubtitleKey string
	ErrorKey    string
}

// AuthFormPage renders the sign-in or register form.
func AuthFormPage(page PageContext, view AuthFormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		loc := page.Loc
		titleKey, buttonKey, toggleKey := "auth.login", "auth.loginButton", "auth.needAccount"
		toggleURL := routepath.RegisterReturning(view.ReturnTo)
		action := routepath.LoginReturning(view.ReturnTo)
		if view.Register {
			titleKey, buttonKey, toggleKey = "auth.register", "auth.registerButton", "auth.haveAccount"
			toggleURL = routepath.LoginReturning(view.ReturnTo)
			action = routepath.RegisterReturning(view.ReturnTo)
		}

		h.raw(`<section class="auth"><a class="back"`)
		h.href(routepath.Root)
		h.raw(">")
		h.text(T(loc, "nav.back"))
		h.raw("</a>")
		h.element("h1", "", T(loc, titleKey))
		if view.SubtitleKey != "" {
			h.element("p", "auth-subtitle", T(loc, view.SubtitleKey))
		}
		if view.ErrorKey != "" {
			h.raw(`<p class="form-error" role="alert">`)
			h.text(T(loc, view.ErrorKey))
			h.raw("</p>")
		}
		h.raw(`<form class="auth-form" method="post"`)
		h.attr("action", action)
		h.raw(`><label class="field"><span>`)
		h.text(T(loc, "auth.email"))
		h.raw(`</span><input type="email" name="email" autocomplete="email" required`)
		h.attr("value", view.Email)
		h.raw(`></label><label class="field"><span>`)
		h.text(T(loc, "auth.password"))
		h.raw(`</span><input type="password" name="password" required minlength="6"`)
		if view.Register {
			h.raw(` autocomplete="new-password"`)
		} else {
			h.raw(` autocomplete="current-password"`)
		}
		h.raw(`></label><button type="submit"`)
		h.attr("data-submitting", T(loc, "auth.processing"))
		h.raw(">")
		h.text(T(loc, buttonKey))
		h.raw(`</button></form><a class="auth-toggle"`)
		h.href(toggleURL)
		h.raw(">")
		h.text(T(loc, toggleKey))
		h.raw("</a></section>")
		return h.err
	})
}
