// Package store provides session persistence behind a small interface.
// Sessions are short-lived: they exist for the duration of one assessment
// run plus a TTL grace window, then disappear. The memory store is the
// default; Redis can be selected for multi-instance deployments.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iqbalrpambudi/disc-examination/internal/model"
)

// ErrSessionNotFound is returned when a token resolves to no live session.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore stores assessment sessions keyed by token.
type SessionStore interface {
	// Get returns the session for a token, or ErrSessionNotFound.
	Get(ctx context.Context, token uuid.UUID) (*model.Session, error)
	// Save writes the session, refreshing its TTL.
	Save(ctx context.Context, session *model.Session) error
	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, token uuid.UUID) error
}
