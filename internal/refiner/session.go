package refiner

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/statekit"
)

// Refinement states. Untyped so they convert to statekit.StateID.
const (
	StateIdle     = "idle"
	StateRefining = "refining"
)

const (
	eventSubmit = "submit"
	eventSettle = "settle"
)

// CopyResetDelay is how long the copied indicator stays on.
const CopyResetDelay = 2 * time.Second

// Notice texts shown to the visitor.
const (
	NoticeEmptyDraft = "Please enter a message to refine"
	NoticeRefined    = "Message refined successfully!"
	NoticeFailed     = "Unable to refine message. Please try again."
	NoticeCopied     = "Copied to clipboard!"
	NoticeCopyFailed = "Unable to copy to clipboard."
)

// Level grades a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Notice is a transient message for the visitor.
type Notice struct {
	Level Level
	Text  string
}

// Outcome describes a settled refine attempt.
type Outcome struct {
	Text     string
	Fallback bool
	Cause    error // why the fallback was used
}

// Timer is the part of *time.Timer the session needs.
type Timer interface {
	Stop() bool
}

// Clock schedules the copied-indicator reset.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type sessionContext struct{}

// Session is the interaction state of one message refiner: the draft, the
// displayed result, the refining flag, the copied indicator and pending
// notices. Only one refine call may be outstanding at a time.
type Session struct {
	refiner   Refiner
	clipboard Clipboard
	clock     Clock
	recipient string

	mu          sync.Mutex
	interpreter *statekit.Interpreter[sessionContext]
	draft       string
	result      string
	copied      bool
	copyTimer   Timer
	notices     []Notice
	closed      bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClipboard sets the clipboard used by Copy.
func WithClipboard(c Clipboard) SessionOption {
	return func(s *Session) { s.clipboard = c }
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) SessionOption {
	return func(s *Session) { s.clock = c }
}

// WithRecipient sets the name greeted by the offline fallback.
func WithRecipient(name string) SessionOption {
	return func(s *Session) { s.recipient = name }
}

// NewSession creates an idle session that refines through r.
func NewSession(r Refiner, opts ...SessionOption) (*Session, error) {
	s := &Session{
		refiner:   r,
		clipboard: SystemClipboard{},
		clock:     realClock{},
		recipient: DefaultRecipient,
	}
	for _, opt := range opts {
		opt(s)
	}

	builder := statekit.NewMachine[sessionContext]("refiner").
		WithInitial(statekit.StateID(StateIdle)).
		WithContext(sessionContext{})

	builder.State(StateIdle).
		On(eventSubmit).Target(StateRefining).
		Done()

	builder.State(StateRefining).
		On(eventSettle).Target(StateIdle).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build refiner state machine: %w", err)
	}
	s.interpreter = statekit.NewInterpreter(machine)
	s.interpreter.Start()

	return s, nil
}

func (s *Session) state() string {
	return string(s.interpreter.State().Value)
}

func (s *Session) send(event string) {
	s.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
}

// SetDraft replaces the draft text.
func (s *Session) SetDraft(draft string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
}

// Draft returns the current draft text.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Result returns the displayed refined message, or "" before any attempt.
func (s *Session) Result() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Refining reports whether a refine call is outstanding.
func (s *Session) Refining() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state() == StateRefining
}

// CanSubmit reports whether the submit control is enabled.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state() == StateIdle && strings.TrimSpace(s.draft) != ""
}

// Copied reports the copied indicator.
func (s *Session) Copied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copied
}

// Notices drains the pending notices.
func (s *Session) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notices
	s.notices = nil
	return n
}

func (s *Session) notify(level Level, text string) {
	s.notices = append(s.notices, Notice{Level: level, Text: text})
}

// Refine sends the trimmed draft to the refiner. A blank draft yields
// ErrEmptyDraft and a busy session ErrBusy; neither issues a call. Remote
// failures are not returned: the result becomes the offline fallback and
// the outcome records the cause.
func (s *Session) Refine(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	draft := s.draft
	if strings.TrimSpace(draft) == "" {
		s.notify(LevelError, NoticeEmptyDraft)
		s.mu.Unlock()
		return Outcome{}, ErrEmptyDraft
	}
	if s.state() != StateIdle {
		s.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	s.send(eventSubmit)
	s.result = ""
	s.mu.Unlock()

	refined, err := s.refiner.Refine(ctx, strings.TrimSpace(draft))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.send(eventSettle)

	if err != nil {
		log.Printf("Error refining message: %v", err)
		s.result = Fallback(draft, s.recipient)
		s.notify(LevelWarning, NoticeFailed)
		return Outcome{Text: s.result, Fallback: true, Cause: err}, nil
	}

	s.result = refined
	s.notify(LevelSuccess, NoticeRefined)
	return Outcome{Text: refined}, nil
}

// Copy writes the displayed result to the clipboard and turns the copied
// indicator on for CopyResetDelay. Copying again restarts the delay.
func (s *Session) Copy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.result == "" {
		return ErrNothingToCopy
	}
	if err := s.clipboard.WriteAll(s.result); err != nil {
		s.notify(LevelError, NoticeCopyFailed)
		return fmt.Errorf("copying to clipboard: %w", err)
	}

	s.copied = true
	s.notify(LevelSuccess, NoticeCopied)
	if s.copyTimer != nil {
		s.copyTimer.Stop()
	}
	var timer Timer
	timer = s.clock.AfterFunc(CopyResetDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.copyTimer == timer {
			s.copied = false
			s.copyTimer = nil
		}
	})
	s.copyTimer = timer
	return nil
}

// Close stops the pending copied-indicator reset. Later copies fail with
// ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.copyTimer != nil {
		s.copyTimer.Stop()
		s.copyTimer = nil
	}
}
