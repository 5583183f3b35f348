package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iqbalrpambudi/disc-examination/internal/model"
)

// MemoryStore keeps sessions in process memory with a TTL. Suitable for a
// single-instance deployment; sessions do not survive a restart.
//
// Get and Save exchange deep copies, never the stored object: the timer
// stream reads a session once per second while mutating endpoints write
// it, and handing out the live pointer would let those race. The Redis
// store gets the same isolation for free from its JSON round-trip.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*memoryEntry
	ttl      time.Duration
	log      zerolog.Logger
}

type memoryEntry struct {
	session   *model.Session
	expiresAt time.Time
}

// NewMemoryStore creates a MemoryStore. ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration, log zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*memoryEntry),
		ttl:      ttl,
		log:      log.With().Str("component", "memory_store").Logger(),
	}
}

// Get implements SessionStore.
func (m *MemoryStore) Get(_ context.Context, token uuid.UUID) (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.ttl > 0 && time.Now().After(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	return entry.session.Clone(), nil
}

// Save implements SessionStore.
func (m *MemoryStore) Save(_ context.Context, session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.Token] = &memoryEntry{
		session:   session.Clone(),
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

// Delete implements SessionStore.
func (m *MemoryStore) Delete(_ context.Context, token uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// StartJanitor runs a sweep loop that evicts expired sessions until the
// context is cancelled. Call in a goroutine from main.
func (m *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 {
		return
	}
	m.log.Info().Dur("interval", interval).Msg("Session janitor started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("Session janitor stopped")
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *MemoryStore) sweep() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	var evicted int
	for token, entry := range m.sessions {
		if now.After(entry.expiresAt) {
			delete(m.sessions, token)
			evicted++
		}
	}
	if evicted > 0 {
		m.log.Debug().Int("evicted", evicted).Msg("Expired sessions evicted")
	}
}
