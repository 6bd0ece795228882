// Package interview drives one mock interview: it loads questions for a
// résumé, collects an answer per question and records the coaching feedback.
package interview

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/prepio/internal/models"
)

// Phase is the position of a Session in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingQuestions
	PhaseAsking
	PhaseAwaitingFeedback
	PhaseShowingFeedback
	PhaseCompleted
)

var phaseNames = map[Phase]string{
	PhaseIdle:              "Idle",
	PhaseAwaitingQuestions: "AwaitingQuestions",
	PhaseAsking:            "Asking",
	PhaseAwaitingFeedback:  "AwaitingFeedback",
	PhaseShowingFeedback:   "ShowingFeedback",
	PhaseCompleted:         "Completed",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Busy reports whether a generation call is in flight.
func (p Phase) Busy() bool {
	return p == PhaseAwaitingQuestions || p == PhaseAwaitingFeedback
}

var (
	ErrBusy          = errors.New("a request is already in progress")
	ErrInvalidAction = errors.New("action not allowed in the current phase")
	ErrEmptyAnswer   = errors.New("answer is empty")
	ErrNoQuestions   = errors.New("no questions were generated")
)

// Backend runs the question and feedback pipelines. The in-process
// services.InterviewService and the HTTP client both satisfy it.
type Backend interface {
	GenerateQuestions(ctx context.Context, doc *models.UploadedDocument, req models.GenerationRequest) ([]string, error)
	GetFeedback(ctx context.Context, question, answer string) (string, error)
}

// TransitionFunc observes every phase change, including the momentary
// Completed phase.
type TransitionFunc func(from, to Phase)

type Option func(*Session)

// WithTransitionHook registers fn for phase changes. fn runs under the
// session lock and must not call back into the Session.
func WithTransitionHook(fn TransitionFunc) Option {
	return func(s *Session) {
		s.onTransition = fn
	}
}

// Session is safe for concurrent use. At most one backend call is in flight;
// a second action while one is pending fails with ErrBusy.
type Session struct {
	mu           sync.Mutex
	backend      Backend
	onTransition TransitionFunc

	id        uuid.UUID
	phase     Phase
	questions []string
	index     int
	feedback  map[int]string
	draft     string
	lastErr   error
}

func NewSession(backend Backend, opts ...Option) *Session {
	s := &Session{
		backend:  backend,
		id:       uuid.New(),
		feedback: make(map[int]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start submits the document and waits for the question list. Failure
// returns the session to Idle with nothing retained.
func (s *Session) Start(ctx context.Context, doc *models.UploadedDocument, req models.GenerationRequest) error {
	s.mu.Lock()
	if err := s.require(PhaseIdle); err != nil {
		s.mu.Unlock()
		return err
	}
	s.lastErr = nil
	s.transition(PhaseAwaitingQuestions)
	s.mu.Unlock()

	questions, err := s.backend.GenerateQuestions(ctx, doc, req)
	if err == nil && len(questions) == 0 {
		err = ErrNoQuestions
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.clear()
		s.lastErr = err
		s.transition(PhaseIdle)
		log.Warn().Err(err).Str("session_id", s.id.String()).Msg("⚠️ Question generation failed")
		return err
	}

	s.questions = append([]string(nil), questions...)
	s.index = 0
	s.transition(PhaseAsking)
	return nil
}

// SubmitAnswer sends the answer for the current question and waits for
// feedback. On failure the session returns to Asking at the same index with
// the answer kept as a draft.
func (s *Session) SubmitAnswer(ctx context.Context, answer string) (string, error) {
	s.mu.Lock()
	if err := s.require(PhaseAsking); err != nil {
		s.mu.Unlock()
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		s.mu.Unlock()
		return "", ErrEmptyAnswer
	}
	question := s.questions[s.index]
	s.draft = answer
	s.lastErr = nil
	s.transition(PhaseAwaitingFeedback)
	s.mu.Unlock()

	feedback, err := s.backend.GetFeedback(ctx, question, answer)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err
		s.transition(PhaseAsking)
		log.Warn().Err(err).
			Str("session_id", s.id.String()).
			Int("index", s.index).
			Msg("⚠️ Feedback request failed")
		return "", err
	}

	s.feedback[s.index] = feedback
	s.draft = ""
	s.transition(PhaseShowingFeedback)
	return feedback, nil
}

// Advance moves past the feedback. After the last question the session
// passes through Completed and is reset to Idle.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require(PhaseShowingFeedback); err != nil {
		return err
	}

	if s.index+1 < len(s.questions) {
		s.index++
		s.transition(PhaseAsking)
		return nil
	}

	s.transition(PhaseCompleted)
	log.Info().Str("session_id", s.id.String()).Int("questions", len(s.questions)).Msg("✅ Interview completed")
	s.reset()
	return nil
}

// Reset abandons the current interview. It is rejected while a call is in flight.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.Busy() {
		return ErrBusy
	}
	s.reset()
	return nil
}

func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// CurrentQuestion returns the question being asked, if any.
func (s *Session) CurrentQuestion() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return "", false
	}
	return s.questions[s.index], true
}

func (s *Session) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.questions...)
}

func (s *Session) Feedback(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fb, ok := s.feedback[index]
	return fb, ok
}

// Draft is the last submitted answer whose feedback has not arrived.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// LastError is the error of the most recent failed call, cleared by the next attempt.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) IsLastQuestion() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions) > 0 && s.index == len(s.questions)-1
}

func (s *Session) require(want Phase) error {
	if s.phase == want {
		return nil
	}
	if s.phase.Busy() {
		return ErrBusy
	}
	return ErrInvalidAction
}

func (s *Session) transition(to Phase) {
	from := s.phase
	s.phase = to
	log.Debug().
		Str("session_id", s.id.String()).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("🔄 Session transition")
	if s.onTransition != nil {
		s.onTransition(from, to)
	}
}

func (s *Session) clear() {
	s.questions = nil
	s.index = 0
	s.feedback = make(map[int]string)
	s.draft = ""
}

// reset drops all interview data and starts a fresh session identity.
func (s *Session) reset() {
	s.clear()
	s.lastErr = nil
	s.id = uuid.New()
	if s.phase != PhaseIdle {
		s.transition(PhaseIdle)
	}
}
