package language

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/talenthub/internal/platform/i18n/catalog"
	"github.com/louisbranch/talenthub/internal/services/shared/i18nhttp"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

func mountLanguage(t *testing.T) http.Handler {
	t.Helper()
	mount, err := New(WithBase(modulehandler.NewBase(catalog.MustLoadEmbedded(), requestmeta.Policy{}))).Mount()
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if len(mount.Patterns) != 1 || mount.Patterns[0] != routepath.LanguagePrefix {
		t.Fatalf("patterns = %v", mount.Patterns)
	}
	return mount.Handler
}

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, handlers{})
}

func TestSelectLanguage(t *testing.T) {
	t.Parallel()

	handler := mountLanguage(t)
	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
		wantCookie   string
	}{
		{name: "default target", path: "/lang/zh", wantStatus: http.StatusSeeOther, wantLocation: "/", wantCookie: "zh"},
		{name: "return to", path: "/lang/ar?return_to=%2Fjobs%2Flocation%2FDubai", wantStatus: http.StatusSeeOther, wantLocation: "/jobs/location/Dubai", wantCookie: "ar"},
		{name: "external return to", path: "/lang/ja?return_to=https%3A%2F%2Fevil.example", wantStatus: http.StatusSeeOther, wantLocation: "/", wantCookie: "ja"},
		{name: "protocol relative", path: "/lang/km?return_to=%2F%2Fevil.example", wantStatus: http.StatusSeeOther, wantLocation: "/", wantCookie: "km"},
		{name: "unsupported", path: "/lang/fr", wantStatus: http.StatusNotFound},
		{name: "region tag", path: "/lang/zh-CN", wantStatus: http.StatusNotFound},
		{name: "nested", path: "/lang/zh/extra", wantStatus: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if got := rr.Header().Get("Location"); got != tc.wantLocation {
				t.Fatalf("location = %q, want %q", got, tc.wantLocation)
			}
			var got string
			for _, cookie := range rr.Result().Cookies() {
				if cookie.Name == i18nhttp.LangCookieName {
					got = cookie.Value
				}
			}
			if got != tc.wantCookie {
				t.Fatalf("cookie = %q, want %q", got, tc.wantCookie)
			}
		})
	}
}

func TestSelectLanguageRejectsPost(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountLanguage(t).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/lang/zh", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}
