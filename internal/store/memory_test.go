package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbalrpambudi/disc-examination/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Hour, zerolog.Nop())
	ctx := context.Background()

	session := model.NewSession("user@example.com", time.Now())
	require.NoError(t, s.Save(ctx, session))

	got, err := s.Get(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Token, got.Token)
	assert.Equal(t, "user@example.com", got.Email)

	// Re-saving the same token overwrites in place.
	got.Email = "changed@example.com"
	require.NoError(t, s.Save(ctx, got))
	again, err := s.Get(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "changed@example.com", again.Email)
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore(time.Hour, zerolog.Nop())

	_, err := s.Get(context.Background(), model.NewSession("x@example.com", time.Now()).Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore(time.Hour, zerolog.Nop())
	ctx := context.Background()

	session := model.NewSession("user@example.com", time.Now())
	require.NoError(t, s.Save(ctx, session))
	require.NoError(t, s.Delete(ctx, session.Token))

	_, err := s.Get(ctx, session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting an absent token is a no-op, not an error.
	assert.NoError(t, s.Delete(ctx, session.Token))
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(10*time.Millisecond, zerolog.Nop())
	ctx := context.Background()

	session := model.NewSession("user@example.com", time.Now())
	require.NoError(t, s.Save(ctx, session))

	time.Sleep(25 * time.Millisecond)
	_, err := s.Get(ctx, session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	s := NewMemoryStore(0, zerolog.Nop())
	ctx := context.Background()

	session := model.NewSession("user@example.com", time.Now())
	require.NoError(t, s.Save(ctx, session))

	time.Sleep(5 * time.Millisecond)
	_, err := s.Get(ctx, session.Token)
	assert.NoError(t, err)
}

func TestMemoryStoreIsolatesStoredState(t *testing.T) {
	s := NewMemoryStore(time.Hour, zerolog.Nop())
	ctx := context.Background()

	session := model.NewSession("user@example.com", time.Now())
	require.NoError(t, s.Save(ctx, session))

	// Mutating either the saved original or a fetched copy must not
	// bleed into the stored session.
	session.Email = "mutated-after-save@example.com"
	got, err := s.Get(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got.Email)

	got.Status = model.SessionStatusCompleted
	got.Answers[1] = model.Answer{QuestionID: 1, Category: model.CategoryD}

	again, err := s.Get(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusAwaitingStart, again.Status)
	assert.Empty(t, again.Answers)
}

func TestMemoryStoreConcurrentReadersAndWriters(t *testing.T) {
	s := NewMemoryStore(time.Hour, zerolog.Nop())
	ctx := context.Background()

	questions := []model.Question{
		{ID: 1, Prompt: "q1", Options: []model.Option{{Label: "a", Category: model.CategoryD}}},
		{ID: 2, Prompt: "q2", Options: []model.Option{{Label: "b", Category: model.CategoryI}}},
	}
	session := model.NewSession("user@example.com", time.Now())
	require.NoError(t, session.Start(questions, time.Now()))
	require.NoError(t, s.Save(ctx, session))
	token := session.Token

	// One goroutine mutates the session the way an answer endpoint does,
	// the other polls it like the timer stream. Run under -race.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			got, err := s.Get(ctx, token)
			if err != nil {
				return
			}
			_ = got.RecordAnswer(1+i%2, questions[i%2].Options[0].Category)
			_ = s.Save(ctx, got)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			got, err := s.Get(ctx, token)
			if err != nil {
				return
			}
			_, _ = got.ElapsedSeconds(time.Now())
		}
	}()
	wg.Wait()

	final, err := s.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusInProgress, final.Status)
}

func TestMemoryStoreSweep(t *testing.T) {
	s := NewMemoryStore(5*time.Millisecond, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Save(ctx, model.NewSession("user@example.com", time.Now())))
	}
	time.Sleep(15 * time.Millisecond)
	s.sweep()

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Empty(t, s.sessions)
}
