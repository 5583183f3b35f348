package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionStatus enumerates assessment session states.
type SessionStatus string

const (
	SessionStatusAwaitingStart SessionStatus = "AWAITING_START"
	SessionStatusInProgress    SessionStatus = "IN_PROGRESS"
	SessionStatusCompleted     SessionStatus = "COMPLETED"
)

// Sentinel errors for invalid state machine transitions. Handlers map
// these to response codes with errors.Is.
var (
	ErrWrongState       = errors.New("operation not valid in current session state")
	ErrUnknownQuestion  = errors.New("question is not part of this session")
	ErrAlreadyCompleted = errors.New("session is already completed")
	ErrNotCompleted     = errors.New("session is not completed")
)

// Session is a single participant's run through the assessment. It is the
// aggregate root: question selection, answer map, timing and computed
// results all live here. All methods are pure state transitions; the
// service layer owns clocks, random draws and storage.
type Session struct {
	Token             uuid.UUID      `json:"token"`
	Email             string         `json:"email"`
	Status            SessionStatus  `json:"status"`
	SelectedQuestions []Question     `json:"selected_questions"`
	CurrentIndex      int            `json:"current_index"`
	Answers           map[int]Answer `json:"answers"`
	StartedAt         *time.Time     `json:"started_at,omitempty"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
	Tally             Tally          `json:"tally"`
	DominantCategory  *Category      `json:"dominant_category,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

// NewSession creates a session awaiting its question draw. The contact
// email is fixed for the session's lifetime (it survives Reset).
func NewSession(email string, now time.Time) *Session {
	return &Session{
		Token:     uuid.New(),
		Email:     email,
		Status:    SessionStatusAwaitingStart,
		Answers:   make(map[int]Answer),
		CreatedAt: now,
	}
}

// Start fixes the drawn question set and begins the run. Valid only from
// AWAITING_START.
func (s *Session) Start(questions []Question, now time.Time) error {
	if s.Status != SessionStatusAwaitingStart {
		return ErrWrongState
	}
	s.SelectedQuestions = questions
	s.CurrentIndex = 0
	s.StartedAt = &now
	s.Status = SessionStatusInProgress
	return nil
}

// RecordAnswer stores the chosen category for a question. Map semantics:
// answering the same question again overwrites the earlier choice.
func (s *Session) RecordAnswer(questionID int, category Category) error {
	if s.Status != SessionStatusInProgress {
		return ErrWrongState
	}
	if !s.contains(questionID) {
		return ErrUnknownQuestion
	}
	s.Answers[questionID] = Answer{QuestionID: questionID, Category: category}
	return nil
}

// Advance moves the cursor forward. At the last question it is a bounded
// no-op and reports false; it never walks past the end and never errors.
func (s *Session) Advance() bool {
	if s.Status != SessionStatusInProgress {
		return false
	}
	if s.CurrentIndex >= len(s.SelectedQuestions)-1 {
		return false
	}
	s.CurrentIndex++
	return true
}

// Retreat moves the cursor back, clamped at the first question.
func (s *Session) Retreat() bool {
	if s.Status != SessionStatusInProgress {
		return false
	}
	if s.CurrentIndex <= 0 {
		return false
	}
	s.CurrentIndex--
	return true
}

// AtLastQuestion reports whether the cursor sits on the final question.
func (s *Session) AtLastQuestion() bool {
	return len(s.SelectedQuestions) > 0 && s.CurrentIndex == len(s.SelectedQuestions)-1
}

// Complete finalizes the run: the tally is computed from the recorded
// answers (unanswered questions contribute nothing, partial completion
// is allowed), the dominant category resolved, and the completion
// timestamp set. Completion is monotonic; a second call errors.
func (s *Session) Complete(now time.Time) error {
	if s.Status == SessionStatusCompleted {
		return ErrAlreadyCompleted
	}
	if s.Status != SessionStatusInProgress {
		return ErrWrongState
	}

	var tally Tally
	for _, a := range s.Answers {
		tally.Inc(a.Category)
	}
	s.Tally = tally

	if dominant, ok := tally.Dominant(); ok {
		s.DominantCategory = &dominant
	} else {
		// No answers at all: the dominant category stays unset and
		// callers must handle its absence explicitly.
		s.DominantCategory = nil
	}

	s.CompletedAt = &now
	s.Status = SessionStatusCompleted
	return nil
}

// Reset discards the question set, answers, timestamps and results and
// returns the session to AWAITING_START. The contact email is preserved:
// a participant restarting the test does not re-enter their address.
func (s *Session) Reset() {
	s.Status = SessionStatusAwaitingStart
	s.SelectedQuestions = nil
	s.CurrentIndex = 0
	s.Answers = make(map[int]Answer)
	s.StartedAt = nil
	s.CompletedAt = nil
	s.Tally = Tally{}
	s.DominantCategory = nil
}

// ElapsedSeconds returns whole seconds between the start of the run and
// its completion (or now, while still in progress). ok is false when the
// run has not started.
func (s *Session) ElapsedSeconds(now time.Time) (int64, bool) {
	if s.StartedAt == nil {
		return 0, false
	}
	end := now
	if s.CompletedAt != nil {
		end = *s.CompletedAt
	}
	secs := int64(end.Sub(*s.StartedAt) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return secs, true
}

// Clone returns a deep copy of the session: its own Answers map,
// question slice and timestamp pointers. Stores hand out clones so no
// two requests ever mutate or read one live object concurrently.
func (s *Session) Clone() *Session {
	c := *s
	c.SelectedQuestions = append([]Question(nil), s.SelectedQuestions...)
	c.Answers = make(map[int]Answer, len(s.Answers))
	for id, a := range s.Answers {
		c.Answers[id] = a
	}
	if s.StartedAt != nil {
		t := *s.StartedAt
		c.StartedAt = &t
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	if s.DominantCategory != nil {
		d := *s.DominantCategory
		c.DominantCategory = &d
	}
	return &c
}

func (s *Session) contains(questionID int) bool {
	for _, q := range s.SelectedQuestions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

// CreateSessionRequest is the payload for creating an assessment session.
type CreateSessionRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RecordAnswerRequest is the payload for answering a question.
type RecordAnswerRequest struct {
	QuestionID int    `json:"question_id" binding:"required"`
	Category   string `json:"category" binding:"required,oneof=D I S C"`
}

// SendReportRequest is the payload for emailing the results report.
type SendReportRequest struct {
	CC        string `json:"cc" binding:"omitempty,email"`
	AttachPDF bool   `json:"attach_pdf"`
}
