package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iqbalrpambudi/disc-examination/internal/dataset"
	"github.com/iqbalrpambudi/disc-examination/internal/model"
	"github.com/iqbalrpambudi/disc-examination/internal/store"
)

// InFlightOp identifies a long-running per-session operation kind.
type InFlightOp string

const (
	OpExport InFlightOp = "export"
	OpSend   InFlightOp = "send"
)

// ErrOperationInFlight signals that the same operation kind is already
// running for the session. At-most-one-in-flight, not a queue: the caller
// retries after the running one finishes.
var ErrOperationInFlight = errors.New("operation already in flight for this session")

// AssessmentService drives the assessment session state machine. The pure
// transitions live on model.Session; this layer owns the clock, the random
// question draw, storage and the in-flight guard.
type AssessmentService struct {
	sessions      store.SessionStore
	bank          *dataset.Bank
	questionCount int
	now           func() time.Time
	rng           *rand.Rand
	rngMu         sync.Mutex
	log           zerolog.Logger

	inflightMu sync.Mutex
	inflight   map[string]bool
}

// NewAssessmentService creates an AssessmentService over the given store
// and question bank. questionCount must not exceed the bank size.
func NewAssessmentService(sessions store.SessionStore, bank *dataset.Bank, questionCount int, log zerolog.Logger) (*AssessmentService, error) {
	if questionCount <= 0 || questionCount > bank.Len() {
		return nil, fmt.Errorf("question count %d out of range for bank of %d", questionCount, bank.Len())
	}
	return &AssessmentService{
		sessions:      sessions,
		bank:          bank,
		questionCount: questionCount,
		now:           time.Now,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		log:           log.With().Str("component", "assessment_service").Logger(),
		inflight:      make(map[string]bool),
	}, nil
}

// CreateSession registers a new session for the given contact email.
// Email format validation happens upstream at the binding layer.
func (s *AssessmentService) CreateSession(ctx context.Context, email string) (*model.Session, error) {
	session := model.NewSession(email, s.now())
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.log.Info().Str("token", session.Token.String()).Msg("Session created")
	return session, nil
}

// GetSession loads a session by token.
func (s *AssessmentService) GetSession(ctx context.Context, token uuid.UUID) (*model.Session, error) {
	return s.sessions.Get(ctx, token)
}

// StartSession draws the question subset and begins the run. The draw is a
// full shuffle of bank indices followed by a prefix take: no duplicate ids,
// every subset reachable.
func (s *AssessmentService) StartSession(ctx context.Context, token uuid.UUID) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := session.Start(s.drawQuestions(), s.now()); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("token", token.String()).
		Int("questions", len(session.SelectedQuestions)).
		Msg("Session started")
	return session, nil
}

// RecordAnswer stores the chosen category for a question in the session's
// drawn set, overwriting any earlier answer for the same question.
func (s *AssessmentService) RecordAnswer(ctx context.Context, token uuid.UUID, questionID int, category model.Category) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := session.RecordAnswer(questionID, category); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Advance moves the cursor forward. Invoked at the last question it
// finalizes the session instead, matching the navigation policy observed in the
// assessment UI, where the final "next" shows the results.
func (s *AssessmentService) Advance(ctx context.Context, token uuid.UUID) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionStatusInProgress {
		return nil, model.ErrWrongState
	}

	if session.AtLastQuestion() {
		if err := session.Complete(s.now()); err != nil {
			return nil, err
		}
		s.logCompleted(session)
	} else {
		session.Advance()
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Retreat moves the cursor back one question, clamped at the first.
func (s *AssessmentService) Retreat(ctx context.Context, token uuid.UUID) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionStatusInProgress {
		return nil, model.ErrWrongState
	}
	session.Retreat()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete finalizes the session explicitly, regardless of cursor
// position. Partial completion is allowed: unanswered questions simply
// contribute nothing to the tally.
func (s *AssessmentService) Complete(ctx context.Context, token uuid.UUID) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := session.Complete(s.now()); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logCompleted(session)
	return session, nil
}

// Reset discards answers, timing and results and returns the session to
// AWAITING_START. The contact email is preserved across the reset.
func (s *AssessmentService) Reset(ctx context.Context, token uuid.UUID) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	session.Reset()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.log.Info().Str("token", token.String()).Msg("Session reset")
	return session, nil
}

// ElapsedSeconds returns whole elapsed seconds for the session's run.
// ok is false when the run has not started yet.
func (s *AssessmentService) ElapsedSeconds(ctx context.Context, token uuid.UUID) (int64, bool, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return 0, false, err
	}
	secs, ok := session.ElapsedSeconds(s.now())
	return secs, ok, nil
}

// TryAcquire marks an operation kind as in flight for a session. Callers
// must Release after the operation finishes or fails.
func (s *AssessmentService) TryAcquire(token uuid.UUID, op InFlightOp) error {
	key := token.String() + ":" + string(op)

	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	if s.inflight[key] {
		return ErrOperationInFlight
	}
	s.inflight[key] = true
	return nil
}

// Release clears the in-flight mark for a session operation.
func (s *AssessmentService) Release(token uuid.UUID, op InFlightOp) {
	key := token.String() + ":" + string(op)

	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	delete(s.inflight, key)
}

func (s *AssessmentService) drawQuestions() []model.Question {
	all := s.bank.Questions()
	indices := make([]int, len(all))
	for i := range indices {
		indices[i] = i
	}

	s.rngMu.Lock()
	s.rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	s.rngMu.Unlock()

	drawn := make([]model.Question, s.questionCount)
	for i := 0; i < s.questionCount; i++ {
		drawn[i] = all[indices[i]]
	}
	return drawn
}

func (s *AssessmentService) logCompleted(session *model.Session) {
	ev := s.log.Info().
		Str("token", session.Token.String()).
		Int("answered", session.Tally.Total())
	if session.DominantCategory != nil {
		ev = ev.Str("dominant", string(*session.DominantCategory))
	}
	ev.Msg("Session completed")
}
