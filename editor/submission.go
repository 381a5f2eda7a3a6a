package editor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// State tracks a one-shot submission: idle until Submit is called, in-flight
// while the transport runs, then success or error. There is no retry; a new
// Submit from success or error starts a fresh attempt.
type State int

const (
	StateIdle State = iota
	StateInFlight
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in-flight"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	ErrSubmissionInFlight = errors.New("editor: submission already in flight")
	ErrTitleEmpty         = errors.New("editor: title is required")
	ErrContentEmpty       = errors.New("editor: content is required")
)

// Payload is the assembled writing-page form, ready for the feed API. An
// empty FeedID means create, otherwise update.
type Payload struct {
	FeedID    string
	Title     string
	Content   string
	Summary   string
	Alias     string
	Tags      []string
	Draft     bool
	Listed    bool
	CreatedAt *time.Time
}

// Validate enforces the client-side rules applied before any network call.
// Title and content are mandatory for creation only.
func (p Payload) Validate() error {
	if p.FeedID != "" {
		return nil
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleEmpty
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrContentEmpty
	}
	return nil
}

// TransportFunc delivers a payload to the backend and returns the created or
// updated document's reference (id or alias) for navigation.
type TransportFunc func(ctx context.Context, p Payload) (string, error)

// Submission guards a single outstanding request with a busy flag and records
// the terminal result. The zero value is ready to use.
type Submission struct {
	mu    sync.Mutex
	state State
	err   error
	ref   string
}

func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the terminal error of the last attempt, if any.
func (s *Submission) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Ref returns the document reference produced by the last successful attempt.
func (s *Submission) Ref() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ref
}

// Reset returns the submission to idle. In-flight submissions cannot be reset.
func (s *Submission) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInFlight {
		return
	}
	s.state = StateIdle
	s.err = nil
	s.ref = ""
}

// Submit validates the payload, then runs the transport exactly once. A
// validation failure rejects before the transport is invoked. While one
// submission is outstanding further calls fail with ErrSubmissionInFlight
// without touching the recorded state.
func (s *Submission) Submit(ctx context.Context, p Payload, transport TransportFunc) (string, error) {
	s.mu.Lock()
	if s.state == StateInFlight {
		s.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	if err := p.Validate(); err != nil {
		s.state = StateError
		s.err = err
		s.mu.Unlock()
		return "", err
	}
	s.state = StateInFlight
	s.err = nil
	s.ref = ""
	s.mu.Unlock()

	ref, err := transport(ctx, p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.err = err
		return "", err
	}
	s.state = StateSuccess
	s.ref = ref
	return ref, nil
}
