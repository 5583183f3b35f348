package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbalrpambudi/disc-examination/internal/dataset"
	"github.com/iqbalrpambudi/disc-examination/internal/model"
	"github.com/iqbalrpambudi/disc-examination/internal/store"
)

func newTestService(t *testing.T, questionCount int) *AssessmentService {
	t.Helper()
	bank, _, err := dataset.Load()
	require.NoError(t, err)

	svc, err := NewAssessmentService(
		store.NewMemoryStore(time.Hour, zerolog.Nop()),
		bank,
		questionCount,
		zerolog.Nop(),
	)
	require.NoError(t, err)
	return svc
}

func TestNewAssessmentServiceRejectsBadCount(t *testing.T) {
	bank, _, err := dataset.Load()
	require.NoError(t, err)

	_, err = NewAssessmentService(store.NewMemoryStore(time.Hour, zerolog.Nop()), bank, 0, zerolog.Nop())
	assert.Error(t, err)
	_, err = NewAssessmentService(store.NewMemoryStore(time.Hour, zerolog.Nop()), bank, bank.Len()+1, zerolog.Nop())
	assert.Error(t, err)
}

func TestStartSessionDrawsUniqueQuestions(t *testing.T) {
	svc := newTestService(t, 10)
	ctx := context.Background()

	// Repeat the draw: no run may contain a duplicate question id.
	for run := 0; run < 20; run++ {
		session, err := svc.CreateSession(ctx, "user@example.com")
		require.NoError(t, err)

		session, err = svc.StartSession(ctx, session.Token)
		require.NoError(t, err)
		require.Len(t, session.SelectedQuestions, 10)

		seen := make(map[int]bool)
		for _, q := range session.SelectedQuestions {
			assert.False(t, seen[q.ID], "duplicate question id %d in draw", q.ID)
			seen[q.ID] = true
		}
	}
}

func TestStartSessionWrongState(t *testing.T) {
	svc := newTestService(t, 5)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "user@example.com")
	require.NoError(t, err)
	_, err = svc.StartSession(ctx, session.Token)
	require.NoError(t, err)

	_, err = svc.StartSession(ctx, session.Token)
	assert.ErrorIs(t, err, model.ErrWrongState)
}

func TestRecordAnswerUnknownSession(t *testing.T) {
	svc := newTestService(t, 5)

	fresh := model.NewSession("other@example.com", time.Now())
	_, err := svc.RecordAnswer(context.Background(), fresh.Token, 1, model.CategoryD)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestAdvanceAutoCompletesAtLastQuestion(t *testing.T) {
	svc := newTestService(t, 3)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "user@example.com")
	require.NoError(t, err)
	session, err = svc.StartSession(ctx, session.Token)
	require.NoError(t, err)

	for _, q := range session.SelectedQuestions {
		_, err := svc.RecordAnswer(ctx, session.Token, q.ID, q.Options[0].Category)
		require.NoError(t, err)
	}

	// Two advances walk to the last question, the third finalizes.
	session, err = svc.Advance(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusInProgress, session.Status)

	session, err = svc.Advance(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, 2, session.CurrentIndex)

	session, err = svc.Advance(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusCompleted, session.Status)
	assert.Equal(t, 3, session.Tally.Total())
	assert.NotNil(t, session.DominantCategory)

	// Navigation after completion is a state violation.
	_, err = svc.Advance(ctx, session.Token)
	assert.ErrorIs(t, err, model.ErrWrongState)
	_, err = svc.Retreat(ctx, session.Token)
	assert.ErrorIs(t, err, model.ErrWrongState)
}

func TestCompletePartialRun(t *testing.T) {
	svc := newTestService(t, 5)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "user@example.com")
	require.NoError(t, err)
	session, err = svc.StartSession(ctx, session.Token)
	require.NoError(t, err)

	q := session.SelectedQuestions[0]
	_, err = svc.RecordAnswer(ctx, session.Token, q.ID, model.CategoryS)
	require.NoError(t, err)

	session, err = svc.Complete(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Tally.Total(), "unanswered questions contribute nothing")
	require.NotNil(t, session.DominantCategory)
	assert.Equal(t, model.CategoryS, *session.DominantCategory)
}

func TestResetKeepsContact(t *testing.T) {
	svc := newTestService(t, 3)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "keep@example.com")
	require.NoError(t, err)
	_, err = svc.StartSession(ctx, session.Token)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, session.Token)
	require.NoError(t, err)

	session, err = svc.Reset(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "keep@example.com", session.Email)
	assert.Equal(t, model.SessionStatusAwaitingStart, session.Status)

	// The stored copy reflects the reset too.
	stored, err := svc.GetSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusAwaitingStart, stored.Status)
}

func TestInFlightGuard(t *testing.T) {
	svc := newTestService(t, 3)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "user@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.TryAcquire(session.Token, OpExport))
	assert.ErrorIs(t, svc.TryAcquire(session.Token, OpExport), ErrOperationInFlight)

	// Different operation kinds do not block each other.
	require.NoError(t, svc.TryAcquire(session.Token, OpSend))

	svc.Release(session.Token, OpExport)
	assert.NoError(t, svc.TryAcquire(session.Token, OpExport))
}
