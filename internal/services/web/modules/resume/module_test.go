package resume

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/talenthub/internal/platform/i18n/catalog"
	authapp "github.com/louisbranch/talenthub/internal/services/auth/app"
	"github.com/louisbranch/talenthub/internal/services/auth/user"
	"github.com/louisbranch/talenthub/internal/services/listing/storage"
	"github.com/louisbranch/talenthub/internal/services/web/module"
	flashnotice "github.com/louisbranch/talenthub/internal/services/web/platform/flash"
	"github.com/louisbranch/talenthub/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/talenthub/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/talenthub/internal/services/web/platform/webctx"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

type fakeSessions struct {
	identity authapp.Identity
	err      error
}

func (f fakeSessions) Session(context.Context, string) (authapp.Identity, error) {
	return f.identity, f.err
}

type fakeWriter struct {
	mu      sync.Mutex
	err     error
	written []storage.Resume
}

func (f *fakeWriter) InsertResume(_ context.Context, resume storage.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, resume)
	return nil
}

func (f *fakeWriter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.written)
}

func activeSessions() fakeSessions {
	return fakeSessions{identity: authapp.Identity{User: user.User{ID: "user-1", Email: "ana@example.com"}}}
}

func mountResume(t *testing.T, sessions SessionResolver, writer ResumeWriter) http.Handler {
	t.Helper()
	mount, err := New(
		WithBase(modulehandler.NewBase(catalog.MustLoadEmbedded(), requestmeta.Policy{})),
		WithSessions(sessions),
		WithWriter(writer),
	).Mount()
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	return mount.Handler
}

func completeForm() url.Values {
	return url.Values{
		"full_name":    {"Ana Lima"},
		"email":        {"ana@example.com"},
		"phone":        {"+971 555 0100"},
		"education":    {"BSc Hospitality"},
		"experience":   {"Three years front desk"},
		"skills":       {"English, Arabic"},
		"cover_letter": {"I would love to join."},
	}
}

func signedIn(r *http.Request) *http.Request {
	return r.WithContext(webctx.WithViewer(r.Context(), module.Viewer{UserID: "user-1", SessionID: "sess-1"}))
}

func postForm(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, routepath.SubmitResume, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, newHandlers(newService(nil, nil), modulehandler.Base{}))
}

func TestFormRequiresSession(t *testing.T) {
	t.Parallel()

	handler := mountResume(t, activeSessions(), &fakeWriter{})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.SubmitResume, nil))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/dashabi/login?return_to=%2Fsubmit-resume" {
		t.Fatalf("Location = %q", got)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, signedIn(httptest.NewRequest(http.MethodGet, routepath.SubmitResume, nil)))
	if rr.Code != http.StatusOK {
		t.Fatalf("signed-in status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `name="cover_letter"`) {
		t.Fatal("expected resume form")
	}
}

func TestSubmitStoresPendingResume(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	handler := mountResume(t, activeSessions(), writer)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, signedIn(postForm(completeForm())))

	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != routepath.SubmitResume {
		t.Fatalf("status = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}
	if writer.count() != 1 {
		t.Fatalf("written = %d, want 1", writer.count())
	}
	got := writer.written[0]
	if got.UserID != "user-1" || got.Status != storage.ResumeStatusPending || got.FullName != "Ana Lima" || got.ID == "" {
		t.Fatalf("resume = %+v", got)
	}
	if got.SubmittedAt.IsZero() || got.SubmittedAt.Location() != time.UTC {
		t.Fatalf("submitted at = %v", got.SubmittedAt)
	}
	flashSet := false
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == flashnotice.CookieName && cookie.Value != "" {
			flashSet = true
		}
	}
	if !flashSet {
		t.Fatal("expected success notice cookie")
	}
}

func TestSubmitRechecksSession(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	handler := mountResume(t, fakeSessions{err: authapp.ErrSessionNotFound}, writer)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, signedIn(postForm(completeForm())))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}
	if !strings.HasPrefix(rr.Header().Get("Location"), routepath.Login) {
		t.Fatalf("Location = %q", rr.Header().Get("Location"))
	}
	if writer.count() != 0 {
		t.Fatal("expected no write for expired session")
	}
}

func TestSubmitMissingFieldsRetainsValues(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	form := completeForm()
	form.Set("skills", "  ")
	rr := httptest.NewRecorder()
	mountResume(t, activeSessions(), writer).ServeHTTP(rr, signedIn(postForm(form)))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{`value="Ana Lima"`, "This field is required", `aria-invalid="true"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	if writer.count() != 0 {
		t.Fatal("expected no write")
	}
}

func TestSubmitStoreFailureRetainsValues(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountResume(t, activeSessions(), &fakeWriter{err: errors.New("disk full")}).ServeHTTP(rr, signedIn(postForm(completeForm())))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `value="Ana Lima"`) || !strings.Contains(body, "I would love to join.") {
		t.Fatal("expected retained values")
	}
	if strings.Contains(body, "disk full") {
		t.Fatal("store error leaked")
	}
}

func TestMissingFields(t *testing.T) {
	t.Parallel()

	got := missingFields(map[string]string{"full_name": "A", "email": "a@b.c"})
	want := []string{"phone", "education", "experience", "skills", "cover_letter"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("missing = %v, want %v", got, want)
	}
}
