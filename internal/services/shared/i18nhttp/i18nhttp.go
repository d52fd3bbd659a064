// Package i18nhttp resolves and persists a visitor's language over HTTP.
package i18nhttp

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	platformi18n "github.com/louisbranch/talenthub/internal/platform/i18n"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language selection.
	LangCookieName = "talenthub_lang"
)

// LanguageOption represents a supported language in the language menu.
type LanguageOption struct {
	Code   platformi18n.Code
	Label  string
	Dir    string
	Active bool
}

// ResolveCode determines the language for the request: query parameter,
// then cookie, then Accept-Language, then the base language.
// The bool indicates whether the query parameter should be persisted.
func ResolveCode(r *http.Request) (platformi18n.Code, bool) {
	if r == nil {
		return platformi18n.Base, false
	}
	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if code, ok := platformi18n.Parse(langValue); ok {
			return code, true
		}
	}
	if code, ok := CookieCode(r); ok {
		return code, false
	}
	if code, ok := platformi18n.MatchAcceptLanguage(r.Header.Get("Accept-Language")); ok {
		return code, false
	}
	return platformi18n.Base, false
}

// CookieCode returns the persisted selection, if any.
func CookieCode(r *http.Request) (platformi18n.Code, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(LangCookieName)
	if err != nil {
		return "", false
	}
	return platformi18n.Parse(cookie.Value)
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, code platformi18n.Code) {
	if w == nil || !code.Valid() {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    code.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// BuildLanguageOptions lists every supported language, marking active.
func BuildLanguageOptions(active platformi18n.Code) []LanguageOption {
	supported := platformi18n.Supported()
	options := make([]LanguageOption, 0, len(supported))
	for _, code := range supported {
		options = append(options, LanguageOption{
			Code:   code,
			Label:  code.Label(),
			Dir:    code.Direction(),
			Active: code == active,
		})
	}
	return options
}

// LanguageURL returns path with the language param updated.
func LanguageURL(path string, rawQuery string, code platformi18n.Code) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, code.String())
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
