package authsession

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s *AuthSession) error
	GetByID(ctx context.Context, sessionID string) (*AuthSession, error)
	// ListActiveByUser returns active sessions ordered by created_at desc.
	ListActiveByUser(ctx context.Context, userID string) ([]*AuthSession, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*AuthSession, error)
	// Deactivate ends one active session. It reports false when the row was already inactive.
	Deactivate(ctx context.Context, sessionID string, endedAt time.Time) (bool, error)
	DeactivateAllByUser(ctx context.Context, userID string, endedAt time.Time) (int64, error)
	Touch(ctx context.Context, sessionID string, at time.Time) error
	// DeleteEndedBefore hard-deletes inactive rows whose end (or last activity) predates cutoff.
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
