package webi18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/talenthub/internal/platform/i18n"
	"github.com/louisbranch/talenthub/internal/services/shared/i18nhttp"
)

func testTable(t *testing.T) *i18n.Table {
	t.Helper()
	table, err := i18n.TableFromTree(map[i18n.Code]map[string]any{
		i18n.English:  {"hero": map[string]any{"title": "Hello"}},
		i18n.Japanese: {"hero": map[string]any{"title": "こんにちは"}},
	})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return table
}

func TestLocalizePersistsQuerySelection(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?lang=ja", nil)
	loc := Localize(rr, req, testTable(t))
	if loc.Language() != i18n.Japanese {
		t.Fatalf("Language() = %q, want %q", loc.Language(), i18n.Japanese)
	}
	if got := loc.T("hero.title"); got != "こんにちは" {
		t.Fatalf("T(hero.title) = %q", got)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != i18nhttp.LangCookieName || cookies[0].Value != "ja" {
		t.Fatalf("cookies = %+v", cookies)
	}
}

func TestLocalizeFromCookieDoesNotRewriteCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: i18nhttp.LangCookieName, Value: "ja"})
	loc := Localize(rr, req, testTable(t))
	if loc.Language() != i18n.Japanese {
		t.Fatalf("Language() = %q", loc.Language())
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("expected no cookie write")
	}
}

func TestNilLocalizerFallsBack(t *testing.T) {
	t.Parallel()

	if got := T(nil, "hero.title"); got != "hero.title" {
		t.Fatalf("T(nil) = %q", got)
	}
	if got := Language(nil); got != i18n.Base {
		t.Fatalf("Language(nil) = %q", got)
	}
}
