package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuestions(n int) []Question {
	questions := make([]Question, n)
	for i := range questions {
		questions[i] = Question{
			ID:     i + 1,
			Prompt: "prompt",
			Options: []Option{
				{Label: "d", Category: CategoryD},
				{Label: "i", Category: CategoryI},
				{Label: "s", Category: CategoryS},
				{Label: "c", Category: CategoryC},
			},
		}
	}
	return questions
}

func startedSession(t *testing.T, n int) *Session {
	t.Helper()
	s := NewSession("user@example.com", time.Now())
	require.NoError(t, s.Start(testQuestions(n), time.Now()))
	return s
}

func TestSessionLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewSession("user@example.com", now)

	assert.Equal(t, SessionStatusAwaitingStart, s.Status)
	assert.Nil(t, s.StartedAt)

	require.NoError(t, s.Start(testQuestions(3), now))
	assert.Equal(t, SessionStatusInProgress, s.Status)
	require.NotNil(t, s.StartedAt)
	assert.Equal(t, 0, s.CurrentIndex)

	// Starting twice is a state violation.
	assert.ErrorIs(t, s.Start(testQuestions(3), now), ErrWrongState)
}

func TestSessionRecordAnswer(t *testing.T) {
	s := startedSession(t, 3)

	require.NoError(t, s.RecordAnswer(1, CategoryD))
	require.NoError(t, s.RecordAnswer(2, CategoryI))

	// Re-answering overwrites, never appends.
	require.NoError(t, s.RecordAnswer(1, CategoryC))
	assert.Len(t, s.Answers, 2)
	assert.Equal(t, CategoryC, s.Answers[1].Category)

	assert.ErrorIs(t, s.RecordAnswer(99, CategoryD), ErrUnknownQuestion)
}

func TestSessionRecordAnswerWrongState(t *testing.T) {
	s := NewSession("user@example.com", time.Now())
	assert.ErrorIs(t, s.RecordAnswer(1, CategoryD), ErrWrongState)

	s = startedSession(t, 2)
	require.NoError(t, s.Complete(time.Now()))
	assert.ErrorIs(t, s.RecordAnswer(1, CategoryD), ErrWrongState)
}

func TestSessionNavigationClamps(t *testing.T) {
	s := startedSession(t, 3)

	// Retreat at the first question is a bounded no-op.
	assert.False(t, s.Retreat())
	assert.Equal(t, 0, s.CurrentIndex)

	assert.True(t, s.Advance())
	assert.True(t, s.Advance())
	assert.Equal(t, 2, s.CurrentIndex)
	assert.True(t, s.AtLastQuestion())

	// Advance at the last question never walks out of bounds.
	assert.False(t, s.Advance())
	assert.Equal(t, 2, s.CurrentIndex)

	assert.True(t, s.Retreat())
	assert.Equal(t, 1, s.CurrentIndex)
}

func TestSessionCompleteTally(t *testing.T) {
	s := startedSession(t, 5)
	require.NoError(t, s.RecordAnswer(1, CategoryD))
	require.NoError(t, s.RecordAnswer(2, CategoryD))
	require.NoError(t, s.RecordAnswer(3, CategoryI))

	done := time.Now()
	require.NoError(t, s.Complete(done))

	assert.Equal(t, SessionStatusCompleted, s.Status)
	assert.Equal(t, Tally{D: 2, I: 1}, s.Tally)
	require.NotNil(t, s.DominantCategory)
	assert.Equal(t, CategoryD, *s.DominantCategory)
	require.NotNil(t, s.CompletedAt)

	// Each answered question contributes exactly 1 to exactly one category.
	assert.Equal(t, len(s.Answers), s.Tally.Total())
}

func TestSessionCompleteWithoutAnswers(t *testing.T) {
	s := startedSession(t, 3)
	require.NoError(t, s.Complete(time.Now()))

	assert.Equal(t, Tally{}, s.Tally)
	assert.Nil(t, s.DominantCategory, "no answers means no dominant category")
}

func TestSessionCompleteMonotonic(t *testing.T) {
	s := startedSession(t, 2)
	require.NoError(t, s.Complete(time.Now()))
	assert.ErrorIs(t, s.Complete(time.Now()), ErrAlreadyCompleted)

	// Completing before starting is a state violation.
	fresh := NewSession("user@example.com", time.Now())
	assert.ErrorIs(t, fresh.Complete(time.Now()), ErrWrongState)
}

func TestSessionResetPreservesEmail(t *testing.T) {
	s := startedSession(t, 3)
	require.NoError(t, s.RecordAnswer(1, CategoryS))
	require.NoError(t, s.Complete(time.Now()))

	s.Reset()

	assert.Equal(t, "user@example.com", s.Email, "contact survives a reset")
	assert.Equal(t, SessionStatusAwaitingStart, s.Status)
	assert.Empty(t, s.SelectedQuestions)
	assert.Empty(t, s.Answers)
	assert.Nil(t, s.StartedAt)
	assert.Nil(t, s.CompletedAt)
	assert.Nil(t, s.DominantCategory)
	assert.Equal(t, Tally{}, s.Tally)

	// And the session is fully runnable again.
	require.NoError(t, s.Start(testQuestions(2), time.Now()))
}

func TestSessionCloneIsIndependent(t *testing.T) {
	s := startedSession(t, 3)
	require.NoError(t, s.RecordAnswer(1, CategoryD))
	require.NoError(t, s.Complete(time.Now()))

	clone := s.Clone()
	assert.Equal(t, s, clone)

	// Writes through the clone must not reach the original: the map,
	// the question slice and the pointer fields are all deep-copied.
	clone.Answers[2] = Answer{QuestionID: 2, Category: CategoryI}
	clone.SelectedQuestions[0].ID = 99
	*clone.CompletedAt = clone.CompletedAt.Add(time.Hour)
	*clone.DominantCategory = CategoryC

	assert.Len(t, s.Answers, 1)
	assert.Equal(t, 1, s.SelectedQuestions[0].ID)
	assert.Equal(t, CategoryD, *s.DominantCategory)
	assert.True(t, clone.CompletedAt.After(*s.CompletedAt))
}

func TestSessionElapsedSeconds(t *testing.T) {
	s := NewSession("user@example.com", time.Now())

	_, ok := s.ElapsedSeconds(time.Now())
	assert.False(t, ok, "no elapsed time before the run starts")

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Start(testQuestions(2), start))

	secs, ok := s.ElapsedSeconds(start.Add(95 * time.Second))
	require.True(t, ok)
	assert.Equal(t, int64(95), secs)

	// After completion the elapsed time is frozen at CompletedAt.
	require.NoError(t, s.Complete(start.Add(2 * time.Minute)))
	secs, ok = s.ElapsedSeconds(start.Add(time.Hour))
	require.True(t, ok)
	assert.Equal(t, int64(120), secs)
}
