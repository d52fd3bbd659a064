package landing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/talenthub/internal/platform/i18n/catalog"
	"github.com/louisbranch/talenthub/internal/services/listing/storage"
	"github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/talenthub/internal/services/web/platform/webctx"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

func landingTestBase() modulehandler.Base {
	return modulehandler.NewBase(catalog.MustLoadEmbedded(), requestmeta.Policy{})
}

func TestMountServesLandingPatterns(t *testing.T) {
	t.Parallel()

	mount, err := New(WithBase(landingTestBase())).Mount()
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if len(mount.Patterns) != 2 || mount.Patterns[0] != "/{$}" || mount.Patterns[1] != routepath.Live {
		t.Fatalf("patterns = %v", mount.Patterns)
	}
	if New().ID() != "landing" {
		t.Fatalf("id = %q", New().ID())
	}
}

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, newHandlers(landingTestBase(), NewAggregator(Config{})))
}

func TestLandingRouteMethodContracts(t *testing.T) {
	t.Parallel()

	mount, err := New(WithBase(landingTestBase())).Mount()
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "index", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "index head", method: http.MethodHead, path: "/", wantStatus: http.StatusOK},
		{name: "index post rejected", method: http.MethodPost, path: "/", wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			mount.Handler.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
		})
	}
}

func TestLandingRendersAggregatedState(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(Config{
		Sessions: &fakeSessions{active: false},
		Jobs:     fakeJobs{jobs: []storage.JobPosting{{ID: "job-1", Title: "Hotel Receptionist", Description: "Front desk in Dubai"}}},
		Counter:  &fakeCounter{counts: map[string]int{"Dubai": 1200}},
		Contact:  fakeContact{settings: storage.ContactSettings{TelegramLink: "https://t.me/talenthub"}},
	})
	mount, err := New(WithBase(landingTestBase()), WithAggregator(agg)).Mount()
	if err != nil {
		t.Fatalf("mount: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(webctx.WithViewer(context.Background(), module.Viewer{UserID: "user-1", SessionID: "expired"}))
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"Hotel Receptionist",
		`data-location-id="6"`,
		"1,200",
		`href="https://t.me/talenthub"`,
		`data-live="/live"`,
		`data-auth="signed-out">`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestLandingHonorsLanguageQuery(t *testing.T) {
	t.Parallel()

	counter := &fakeCounter{counts: map[string]int{}}
	mount, err := New(WithBase(landingTestBase()), WithAggregator(NewAggregator(Config{Counter: counter}))).Mount()
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?lang=zh", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `lang="zh"`) {
		t.Fatal("expected zh document language")
	}
	found := false
	for _, q := range counter.seen() {
		if q == "迪拜" {
			found = true
		}
	}
	if !found {
		t.Fatalf("queries = %v, want translated location names", counter.seen())
	}
}
