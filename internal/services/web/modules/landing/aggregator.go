package landing

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/talenthub/internal/platform/i18n"
	"github.com/louisbranch/talenthub/internal/platform/timeouts"
	"github.com/louisbranch/talenthub/internal/services/auth/events"
	"github.com/louisbranch/talenthub/internal/services/listing/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/louisbranch/talenthub/internal/services/web/modules/landing"

// SessionChecker reports whether a session id is still active.
type SessionChecker interface {
	SessionActive(ctx context.Context, sessionID string) (bool, error)
}

// JobLister lists postings newest first.
type JobLister interface {
	ListJobs(ctx context.Context) ([]storage.JobPosting, error)
}

// JobCounter counts postings whose description matches text.
type JobCounter interface {
	CountJobsMatching(ctx context.Context, text string) (int, error)
}

// ContactLoader loads the contact settings record.
type ContactLoader interface {
	GetContactSettings(ctx context.Context) (storage.ContactSettings, error)
}

// Change names the piece of State a commit touched.
type Change string

const (
	ChangeSession   Change = "session"
	ChangeJobs      Change = "jobs"
	ChangeLocations Change = "locations"
	ChangeContact   Change = "contact"
	ChangeLanguage  Change = "language"
)

// Contact holds the customer-service links; empty means hidden.
type Contact struct {
	WhatsApp string
	Telegram string
}

// State is the landing page's view state.
type State struct {
	Language      i18n.Code
	Authenticated bool
	Jobs          []storage.JobPosting
	Locations     []Location
	// CountsLanguage is the language whose location names produced the
	// current counts.
	CountsLanguage i18n.Code
	Contact        Contact
}

func (s State) clone() State {
	out := s
	if s.Jobs != nil {
		out.Jobs = make([]storage.JobPosting, len(s.Jobs))
		copy(out.Jobs, s.Jobs)
	}
	out.Locations = copyLocations(s.Locations)
	return out
}

// Config wires the aggregator's gateways. Nil gateways behave as failing
// acquisitions and leave their state at its default.
type Config struct {
	Sessions  SessionChecker
	Jobs      JobLister
	Counter   JobCounter
	Contact   ContactLoader
	Broker    events.Broker
	Locations []Location
	// FetchTimeout caps each acquisition; zero uses timeouts.LandingFetch.
	FetchTimeout time.Duration
	Tracer       trace.Tracer
}

// Aggregator activates landing page views.
type Aggregator struct {
	sessions     SessionChecker
	jobs         JobLister
	counter      JobCounter
	contact      ContactLoader
	broker       events.Broker
	locations    []Location
	fetchTimeout time.Duration
	tracer       trace.Tracer
}

// NewAggregator builds an Aggregator from cfg.
func NewAggregator(cfg Config) *Aggregator {
	locations := cfg.Locations
	if len(locations) == 0 {
		locations = DefaultLocations()
	}
	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = timeouts.LandingFetch
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Aggregator{
		sessions:     cfg.Sessions,
		jobs:         cfg.Jobs,
		counter:      cfg.Counter,
		contact:      cfg.Contact,
		broker:       cfg.Broker,
		locations:    copyLocations(locations),
		fetchTimeout: fetchTimeout,
		tracer:       tracer,
	}
}

// ActivateInput identifies the visitor a view is built for.
type ActivateInput struct {
	SessionID string
	ClientID  string
	Language  *i18n.Context
}

// View is one visitor's landing page state. Each acquisition commits only
// its own field; subscribers see commits one at a time, in commit order.
type View struct {
	agg       *Aggregator
	lang      *i18n.Context
	sessionID string
	clientID  string

	ctx    context.Context
	cancel context.CancelFunc
	ready  chan struct{}

	mu     sync.Mutex
	state  State
	closed bool
	// authGen counts pushed auth events; the mount-time session check only
	// commits while it is still zero.
	authGen     uint64
	nextID      int
	subscribers []viewSubscriber

	// notifyMu serializes commit delivery so subscribers never observe two
	// commits interleaved.
	notifyMu sync.Mutex

	closeOnce sync.Once
	unsubs    []func()
}

type viewSubscriber struct {
	id int
	fn func(Change, State)
}

// Activate starts the four landing acquisitions for one visitor, each in
// its own goroutine, and subscribes the view to auth events for the
// visitor's client id and to language changes. Callers must Close the view.
func (a *Aggregator) Activate(ctx context.Context, input ActivateInput) *View {
	if ctx == nil {
		ctx = context.Background()
	}
	lang := input.Language
	if lang == nil {
		lang = i18n.NewContext(nil, i18n.Base)
	}
	initialLanguage := lang.Language()
	viewCtx, cancel := context.WithCancel(ctx)
	v := &View{
		agg:       a,
		lang:      lang,
		sessionID: strings.TrimSpace(input.SessionID),
		clientID:  strings.TrimSpace(input.ClientID),
		ctx:       viewCtx,
		cancel:    cancel,
		ready:     make(chan struct{}),
		state: State{
			Language:  initialLanguage,
			Locations: copyLocations(a.locations),
		},
	}

	if a.broker != nil && v.clientID != "" {
		v.unsubs = append(v.unsubs, a.broker.Subscribe(v.clientID, v.handleAuthEvent))
	}
	v.unsubs = append(v.unsubs, lang.Subscribe(v.handleLanguageChange))

	var initial sync.WaitGroup
	initial.Add(4)
	for _, acquire := range []func(context.Context){
		v.checkSession,
		v.fetchJobs,
		func(ctx context.Context) { v.refreshCounts(ctx, initialLanguage) },
		v.fetchContact,
	} {
		go func() {
			defer initial.Done()
			acquire(viewCtx)
		}()
	}
	go func() {
		initial.Wait()
		close(v.ready)
	}()
	return v
}

// Wait blocks until the four initial acquisitions have committed or
// failed, or ctx ends.
func (v *View) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-v.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a deep copy of the current state.
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.clone()
}

// Language returns the view's Language Context.
func (v *View) Language() *i18n.Context {
	return v.lang
}

// Subscribe registers fn for every later commit. fn runs on the committing
// goroutine and must not call back into blocking View methods.
func (v *View) Subscribe(fn func(Change, State)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.subscribers = append(v.subscribers, viewSubscriber{id: id, fn: fn})
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			for i, sub := range v.subscribers {
				if sub.id == id {
					v.subscribers = append(v.subscribers[:i], v.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// RefreshCounts re-runs the per-location count batch in the current
// language and blocks until it commits.
func (v *View) RefreshCounts(ctx context.Context) {
	if ctx == nil {
		ctx = v.ctx
	}
	v.refreshCounts(ctx, v.lang.Language())
}

// Close stops in-flight acquisitions and drops every later commit.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		v.mu.Lock()
		v.closed = true
		v.subscribers = nil
		v.mu.Unlock()
		v.cancel()
		for _, unsubscribe := range v.unsubs {
			unsubscribe()
		}
	})
}

func (v *View) commit(change Change, apply func(*State)) {
	v.commitIf(change, func(s *State) bool {
		apply(s)
		return true
	})
}

// commitIf applies and publishes a change unless apply reports it stale.
// apply runs under the state lock.
func (v *View) commitIf(change Change, apply func(*State) bool) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	if v.closed || !apply(&v.state) {
		v.mu.Unlock()
		return
	}
	snapshot := v.state.clone()
	subscribers := make([]func(Change, State), 0, len(v.subscribers))
	for _, sub := range v.subscribers {
		subscribers = append(subscribers, sub.fn)
	}
	v.mu.Unlock()

	for _, fn := range subscribers {
		fn(change, snapshot.clone())
	}
}

func (v *View) startSpan(ctx context.Context, name string) (context.Context, trace.Span, context.CancelFunc) {
	ctx, span := v.agg.tracer.Start(ctx, name)
	ctx, cancel := context.WithTimeout(ctx, v.agg.fetchTimeout)
	return ctx, span, cancel
}

func recordFailure(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// checkSession treats every failure as signed out. A pushed auth event that
// lands while the check runs wins over its result.
func (v *View) checkSession(ctx context.Context) {
	ctx, span, cancel := v.startSpan(ctx, "landing.session")
	defer span.End()
	defer cancel()

	active := false
	switch {
	case v.sessionID == "" || v.agg.sessions == nil:
	default:
		ok, err := v.agg.sessions.SessionActive(ctx, v.sessionID)
		if err != nil {
			recordFailure(span, err)
			log.Printf("landing: session check failed: %v", err)
		} else {
			active = ok
		}
	}
	span.SetAttributes(attribute.Bool("landing.authenticated", active))
	v.commitIf(ChangeSession, func(s *State) bool {
		if v.authGen != 0 {
			span.SetAttributes(attribute.Bool("landing.superseded", true))
			return false
		}
		s.Authenticated = active
		return true
	})
}

// fetchJobs keeps the previous listing when the fetch fails.
func (v *View) fetchJobs(ctx context.Context) {
	ctx, span, cancel := v.startSpan(ctx, "landing.jobs")
	defer span.End()
	defer cancel()

	if v.agg.jobs == nil {
		return
	}
	jobs, err := v.agg.jobs.ListJobs(ctx)
	if err != nil {
		recordFailure(span, err)
		log.Printf("landing: list jobs failed: %v", err)
		return
	}
	span.SetAttributes(attribute.Int("landing.jobs", len(jobs)))
	v.commit(ChangeJobs, func(s *State) { s.Jobs = jobs })
}

// refreshCounts issues one count query per location concurrently, matching
// each location's name resolved in code, and commits the whole batch once
// every query has finished. A failed query counts as zero.
func (v *View) refreshCounts(ctx context.Context, code i18n.Code) {
	ctx, span := v.agg.tracer.Start(ctx, "landing.counts")
	defer span.End()
	span.SetAttributes(attribute.String("landing.language", code.String()))

	locations := copyLocations(v.agg.locations)
	counts := make([]int, len(locations))
	var group errgroup.Group
	for i, location := range locations {
		group.Go(func() error {
			if v.agg.counter == nil {
				return nil
			}
			name := v.lang.Resolve(code, location.NameKey)
			callCtx, cancel := context.WithTimeout(ctx, v.agg.fetchTimeout)
			defer cancel()
			count, err := v.agg.counter.CountJobsMatching(callCtx, name)
			if err != nil {
				log.Printf("landing: count jobs failed location=%d name=%q: %v", location.ID, name, err)
				return nil
			}
			counts[i] = count
			return nil
		})
	}
	_ = group.Wait()

	for i := range locations {
		locations[i].Count = counts[i]
	}
	v.commitIf(ChangeLocations, func(s *State) bool {
		if s.Language != code {
			return false
		}
		s.Locations = locations
		s.CountsLanguage = code
		return true
	})
}

// fetchContact hides both links on failure or when nothing is saved.
func (v *View) fetchContact(ctx context.Context) {
	ctx, span, cancel := v.startSpan(ctx, "landing.contact")
	defer span.End()
	defer cancel()

	contact := Contact{}
	if v.agg.contact != nil {
		settings, err := v.agg.contact.GetContactSettings(ctx)
		switch {
		case err == nil:
			contact = Contact{WhatsApp: settings.WhatsAppLink, Telegram: settings.TelegramLink}
		case errors.Is(err, storage.ErrNotFound):
		default:
			recordFailure(span, err)
			log.Printf("landing: load contact settings failed: %v", err)
		}
	}
	v.commit(ChangeContact, func(s *State) { s.Contact = contact })
}

func (v *View) handleAuthEvent(event events.Event) {
	v.commit(ChangeSession, func(s *State) {
		v.authGen++
		s.Authenticated = event.Authenticated()
	})
}

// handleLanguageChange refetches counts because they depend on the
// translated location names. A batch for a language that is no longer
// current is dropped, so counts always match the displayed names.
func (v *View) handleLanguageChange(code i18n.Code) {
	v.commit(ChangeLanguage, func(s *State) { s.Language = code })
	go v.refreshCounts(v.ctx, code)
}
