package authflow

import (
	"errors"
	"sync"
)

// FlowState is one step of a sign-in or register attempt.
type FlowState string

const (
	FlowIdle       FlowState = "idle"
	FlowSubmitting FlowState = "submitting"
	FlowSucceeded  FlowState = "succeeded"
	FlowFailed     FlowState = "failed"
)

// ErrFlowBusy rejects a submit while another is in flight.
var ErrFlowBusy = errors.New("auth flow is already submitting")

// Flow tracks one form's attempts: Idle, then Submitting, then Succeeded
// with a redirect target or Failed with an error key. A failure returns to
// Idle once it has been shown. There is no automatic retry.
type Flow struct {
	mu       sync.Mutex
	state    FlowState
	errorKey string
	target   string
}

// NewFlow returns an idle Flow.
func NewFlow() *Flow {
	return &Flow{state: FlowIdle}
}

// State returns the current step.
func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ErrorKey returns the translation key of the last failure.
func (f *Flow) ErrorKey() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorKey
}

// Target returns where a succeeded flow navigates.
func (f *Flow) Target() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

func (f *Flow) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FlowIdle {
		return ErrFlowBusy
	}
	f.state = FlowSubmitting
	f.errorKey = ""
	f.target = ""
	return nil
}

func (f *Flow) succeed(target string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FlowSubmitting {
		f.state = FlowSucceeded
		f.target = target
	}
}

func (f *Flow) fail(errorKey string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FlowSubmitting {
		f.state = FlowFailed
		f.errorKey = errorKey
	}
}

// Acknowledge returns a failed flow to Idle, keeping its error key for
// display.
func (f *Flow) Acknowledge() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FlowFailed {
		f.state = FlowIdle
	}
}

// flowSet keeps one Flow per client, so a duplicate submit from the same
// browser is rejected while the first is in flight. Settled flows are
// dropped; an empty client id always gets a fresh Flow.
type flowSet struct {
	mu    sync.Mutex
	flows map[string]*Flow
}

func newFlowSet() *flowSet {
	return &flowSet{flows: make(map[string]*Flow)}
}

// acquire returns the client's current Flow, creating an idle one.
func (s *flowSet) acquire(clientID string) *Flow {
	if s == nil || clientID == "" {
		return NewFlow()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, ok := s.flows[clientID]
	if !ok {
		flow = NewFlow()
		s.flows[clientID] = flow
	}
	return flow
}

// release forgets flow once it is no longer submitting.
func (s *flowSet) release(clientID string, flow *Flow) {
	if s == nil || clientID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flows[clientID] == flow && flow.State() != FlowSubmitting {
		delete(s.flows, clientID)
	}
}
