package landing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/louisbranch/talenthub/internal/platform/i18n"
	"github.com/louisbranch/talenthub/internal/services/auth/events"
	"github.com/louisbranch/talenthub/internal/services/listing/storage"
)

type fakeSessions struct {
	active bool
	err    error
	calls  atomic.Int32
}

func (f *fakeSessions) SessionActive(context.Context, string) (bool, error) {
	f.calls.Add(1)
	return f.active, f.err
}

type fakeJobs struct {
	jobs []storage.JobPosting
	err  error
}

func (f fakeJobs) ListJobs(context.Context) ([]storage.JobPosting, error) {
	return f.jobs, f.err
}

// fakeCounter answers counts by matched text and records every query.
type fakeCounter struct {
	mu      sync.Mutex
	counts  map[string]int
	failing map[string]bool
	queries []string
}

func (f *fakeCounter) CountJobsMatching(_ context.Context, text string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, text)
	if f.failing[text] {
		return 0, errors.New("count failed")
	}
	return f.counts[text], nil
}

func (f *fakeCounter) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type fakeContact struct {
	settings storage.ContactSettings
	err      error
}

func (f fakeContact) GetContactSettings(context.Context) (storage.ContactSettings, error) {
	return f.settings, f.err
}

func testLocations() []Location {
	return []Location{
		{ID: 1, NameKey: "locations.ghana"},
		{ID: 2, NameKey: "locations.dubai"},
		{ID: 3, NameKey: "locations.oman"},
	}
}

func testTable(t *testing.T) *i18n.Table {
	t.Helper()
	table := i18n.NewTable()
	for _, entry := range []struct {
		code  i18n.Code
		path  string
		value string
	}{
		{i18n.English, "locations.ghana", "Ghana"},
		{i18n.English, "locations.dubai", "Dubai"},
		{i18n.English, "locations.oman", "Oman"},
		{i18n.Chinese, "locations.ghana", "加纳"},
		{i18n.Chinese, "locations.dubai", "迪拜"},
		{i18n.Chinese, "locations.oman", "阿曼"},
	} {
		if err := table.Add(entry.code, entry.path, entry.value); err != nil {
			t.Fatalf("add %s %s: %v", entry.code, entry.path, err)
		}
	}
	return table
}

func waitView(t *testing.T, view *View) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := view.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func counts(locations []Location) []int {
	out := make([]int, 0, len(locations))
	for _, location := range locations {
		out = append(out, location.Count)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestActivateCommitsEveryAcquisition(t *testing.T) {
	t.Parallel()

	sessions := &fakeSessions{active: true}
	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	agg := NewAggregator(Config{
		Sessions:  sessions,
		Jobs:      fakeJobs{jobs: []storage.JobPosting{{ID: "job-1", Title: "Welder", CreatedAt: created}}},
		Counter:   &fakeCounter{counts: map[string]int{"Ghana": 4, "Dubai": 1}},
		Contact:   fakeContact{settings: storage.ContactSettings{WhatsAppLink: "https://wa.me/1", TelegramLink: "https://t.me/x"}},
		Locations: testLocations(),
	})
	view := agg.Activate(context.Background(), ActivateInput{
		SessionID: "sess-1",
		Language:  i18n.NewContext(testTable(t), i18n.English),
	})
	defer view.Close()
	waitView(t, view)

	snap := view.Snapshot()
	if !snap.Authenticated {
		t.Fatal("expected authenticated")
	}
	if len(snap.Jobs) != 1 || snap.Jobs[0].ID != "job-1" {
		t.Fatalf("jobs = %+v", snap.Jobs)
	}
	if got := counts(snap.Locations); !equalInts(got, []int{4, 1, 0}) {
		t.Fatalf("counts = %v", got)
	}
	if snap.CountsLanguage != i18n.English || snap.Language != i18n.English {
		t.Fatalf("languages = %q/%q", snap.Language, snap.CountsLanguage)
	}
	if snap.Contact.WhatsApp != "https://wa.me/1" || snap.Contact.Telegram != "https://t.me/x" {
		t.Fatalf("contact = %+v", snap.Contact)
	}
}

func TestCountFailureCountsZeroInOneCommit(t *testing.T) {
	t.Parallel()

	counter := &fakeCounter{
		counts:  map[string]int{"Ghana": 5, "Oman": 2},
		failing: map[string]bool{"Dubai": true},
	}
	agg := NewAggregator(Config{Counter: counter, Locations: testLocations()})
	view := agg.Activate(context.Background(), ActivateInput{Language: i18n.NewContext(testTable(t), i18n.English)})
	defer view.Close()
	waitView(t, view)

	var mu sync.Mutex
	var commits [][]int
	view.Subscribe(func(change Change, state State) {
		if change != ChangeLocations {
			return
		}
		mu.Lock()
		commits = append(commits, counts(state.Locations))
		mu.Unlock()
	})
	view.RefreshCounts(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if len(commits) != 1 {
		t.Fatalf("location commits = %d, want 1", len(commits))
	}
	if !equalInts(commits[0], []int{5, 0, 2}) {
		t.Fatalf("counts = %v, want [5 0 2]", commits[0])
	}
}

func TestSessionCheckFailurePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sessionID string
		sessions  *fakeSessions
		wantCalls int32
	}{
		{name: "empty session id skips lookup", sessionID: "", sessions: &fakeSessions{active: true}, wantCalls: 0},
		{name: "lookup error is signed out", sessionID: "sess-1", sessions: &fakeSessions{active: true, err: errors.New("db down")}, wantCalls: 1},
		{name: "inactive session", sessionID: "sess-1", sessions: &fakeSessions{}, wantCalls: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			view := NewAggregator(Config{Sessions: tc.sessions, Locations: testLocations()}).
				Activate(context.Background(), ActivateInput{SessionID: tc.sessionID})
			defer view.Close()
			waitView(t, view)
			if view.Snapshot().Authenticated {
				t.Fatal("expected signed out")
			}
			if got := tc.sessions.calls.Load(); got != tc.wantCalls {
				t.Fatalf("calls = %d, want %d", got, tc.wantCalls)
			}
		})
	}
}

func TestJobsFailureStillCompletesWait(t *testing.T) {
	t.Parallel()

	view := NewAggregator(Config{Jobs: fakeJobs{err: errors.New("timeout")}, Locations: testLocations()}).
		Activate(context.Background(), ActivateInput{})
	defer view.Close()
	waitView(t, view)
	if jobs := view.Snapshot().Jobs; len(jobs) != 0 {
		t.Fatalf("jobs = %+v, want none", jobs)
	}
}

func TestContactFailureHidesLinks(t *testing.T) {
	t.Parallel()

	for _, err := range []error{storage.ErrNotFound, errors.New("boom")} {
		view := NewAggregator(Config{
			Contact:   fakeContact{settings: storage.ContactSettings{WhatsAppLink: "https://wa.me/1"}, err: err},
			Locations: testLocations(),
		}).Activate(context.Background(), ActivateInput{})
		waitView(t, view)
		if contact := view.Snapshot().Contact; contact != (Contact{}) {
			t.Fatalf("contact = %+v for %v", contact, err)
		}
		view.Close()
	}
}

func TestAuthEventsUpdateMatchingClient(t *testing.T) {
	t.Parallel()

	broker := events.NewMemoryBroker()
	agg := NewAggregator(Config{Broker: broker, Locations: testLocations()})
	view := agg.Activate(context.Background(), ActivateInput{ClientID: "client-a"})
	defer view.Close()
	waitView(t, view)

	publish := func(event events.Event) {
		t.Helper()
		if err := broker.Publish(context.Background(), event); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	publish(events.Event{Kind: events.KindSignedIn, ClientID: "client-b"})
	if view.Snapshot().Authenticated {
		t.Fatal("event for another client changed state")
	}
	publish(events.Event{Kind: events.KindSignedIn, ClientID: "client-a"})
	if !view.Snapshot().Authenticated {
		t.Fatal("expected signed in after event")
	}
	publish(events.Event{Kind: events.KindSignedOut, ClientID: "client-a"})
	if view.Snapshot().Authenticated {
		t.Fatal("expected signed out after event")
	}
}

func TestLanguageChangeRefetchesCountsWithTranslatedNames(t *testing.T) {
	t.Parallel()

	counter := &fakeCounter{counts: map[string]int{"Dubai": 1, "迪拜": 7}}
	lang := i18n.NewContext(testTable(t), i18n.English)
	view := NewAggregator(Config{Counter: counter, Locations: testLocations()}).
		Activate(context.Background(), ActivateInput{Language: lang})
	defer view.Close()
	waitView(t, view)

	refreshed := make(chan State, 1)
	var changes []Change
	var mu sync.Mutex
	view.Subscribe(func(change Change, state State) {
		mu.Lock()
		changes = append(changes, change)
		mu.Unlock()
		if change == ChangeLocations && state.CountsLanguage == i18n.Chinese {
			refreshed <- state
		}
	})

	if err := lang.SetLanguage("zh"); err != nil {
		t.Fatalf("set language: %v", err)
	}

	select {
	case state := <-refreshed:
		if state.Language != i18n.Chinese {
			t.Fatalf("language = %q", state.Language)
		}
		if got := counts(state.Locations); !equalInts(got, []int{0, 7, 0}) {
			t.Fatalf("counts = %v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("counts were not refreshed")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(changes) < 2 || changes[0] != ChangeLanguage {
		t.Fatalf("changes = %v, want language first", changes)
	}
	queried := false
	for _, q := range counter.seen() {
		if q == "加纳" {
			queried = true
		}
	}
	if !queried {
		t.Fatalf("queries = %v, want translated names", counter.seen())
	}
}

func TestCloseDropsLaterCommits(t *testing.T) {
	t.Parallel()

	broker := events.NewMemoryBroker()
	lang := i18n.NewContext(testTable(t), i18n.English)
	view := NewAggregator(Config{Broker: broker, Counter: &fakeCounter{}, Locations: testLocations()}).
		Activate(context.Background(), ActivateInput{ClientID: "client-a", Language: lang})
	waitView(t, view)

	var calls atomic.Int32
	view.Subscribe(func(Change, State) { calls.Add(1) })
	view.Close()
	view.Close()

	_ = broker.Publish(context.Background(), events.Event{Kind: events.KindSignedIn, ClientID: "client-a"})
	_ = lang.SetLanguage("zh")
	view.RefreshCounts(context.Background())

	if calls.Load() != 0 {
		t.Fatalf("subscriber calls after close = %d", calls.Load())
	}
	snap := view.Snapshot()
	if snap.Authenticated || snap.Language != i18n.English {
		t.Fatalf("state changed after close: %+v", snap)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	t.Parallel()

	view := NewAggregator(Config{Locations: testLocations()}).Activate(context.Background(), ActivateInput{})
	defer view.Close()
	waitView(t, view)

	snap := view.Snapshot()
	snap.Locations[0].Count = 99
	if view.Snapshot().Locations[0].Count == 99 {
		t.Fatal("snapshot shares location storage with the view")
	}
}

// gatedSessions holds the session check until release is closed.
type gatedSessions struct {
	started chan struct{}
	release chan struct{}
	active  bool
}

func (g *gatedSessions) SessionActive(ctx context.Context, _ string) (bool, error) {
	close(g.started)
	select {
	case <-g.release:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	return g.active, nil
}

func TestAuthEventDuringSessionCheckWins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		checkSays bool
		event     events.Kind
		want      bool
	}{
		{name: "sign in beats stale signed out check", checkSays: false, event: events.KindSignedIn, want: true},
		{name: "sign out beats stale signed in check", checkSays: true, event: events.KindSignedOut, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			broker := events.NewMemoryBroker()
			sessions := &gatedSessions{started: make(chan struct{}), release: make(chan struct{}), active: tc.checkSays}
			view := NewAggregator(Config{Sessions: sessions, Broker: broker, Locations: testLocations()}).
				Activate(context.Background(), ActivateInput{SessionID: "sid", ClientID: "client-a"})
			defer view.Close()

			select {
			case <-sessions.started:
			case <-time.After(2 * time.Second):
				t.Fatal("session check never started")
			}
			if err := broker.Publish(context.Background(), events.Event{Kind: tc.event, ClientID: "client-a"}); err != nil {
				t.Fatalf("publish: %v", err)
			}
			if got := view.Snapshot().Authenticated; got != tc.want {
				t.Fatalf("after event authenticated = %v, want %v", got, tc.want)
			}

			close(sessions.release)
			waitView(t, view)
			if got := view.Snapshot().Authenticated; got != tc.want {
				t.Fatalf("after session check authenticated = %v, want %v", got, tc.want)
			}
		})
	}
}

// slowEnglishCounter blocks queries for English location names until
// release is closed.
type slowEnglishCounter struct {
	release chan struct{}
	counts  map[string]int
}

func (c *slowEnglishCounter) CountJobsMatching(ctx context.Context, text string) (int, error) {
	switch text {
	case "Ghana", "Dubai", "Oman":
		select {
		case <-c.release:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return c.counts[text], nil
}

func TestStaleLanguageCountBatchIsDropped(t *testing.T) {
	t.Parallel()

	counter := &slowEnglishCounter{
		release: make(chan struct{}),
		counts:  map[string]int{"Dubai": 3, "迪拜": 7},
	}
	lang := i18n.NewContext(testTable(t), i18n.English)
	view := NewAggregator(Config{Counter: counter, Locations: testLocations()}).
		Activate(context.Background(), ActivateInput{Language: lang})
	defer view.Close()

	if err := lang.SetLanguage("zh"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for view.Snapshot().CountsLanguage != i18n.Chinese {
		if time.Now().After(deadline) {
			t.Fatal("chinese counts never committed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	close(counter.release)
	waitView(t, view)

	snap := view.Snapshot()
	if snap.Language != i18n.Chinese || snap.CountsLanguage != i18n.Chinese {
		t.Fatalf("languages = %q/%q, want zh/zh", snap.Language, snap.CountsLanguage)
	}
	if got := counts(snap.Locations); !equalInts(got, []int{0, 7, 0}) {
		t.Fatalf("counts = %v, want chinese batch", got)
	}
}
