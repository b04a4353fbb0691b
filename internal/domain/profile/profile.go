// Package profile holds the per-user profile row, including the pointer to
// the quiz session the user is currently taking.
package profile

import (
	"context"
	"time"
)

type UserProfile struct {
	UserID          string
	Email           string
	DisplayName     string
	IsAdmin         bool
	ActiveSessionID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PointsAt reports whether the active-session pointer references sessionID.
func (p *UserProfile) PointsAt(sessionID string) bool {
	return p.ActiveSessionID != nil && *p.ActiveSessionID == sessionID
}

type Repository interface {
	// EnsureExists inserts the profile if no row exists for its user; existing rows are untouched.
	EnsureExists(ctx context.Context, p *UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*UserProfile, error)
	// LockForUpdate reads the profile holding a row lock for the surrounding transaction.
	LockForUpdate(ctx context.Context, userID string) (*UserProfile, error)
	SetActiveSession(ctx context.Context, userID, sessionID string) error
	// ClearActiveSessionIf clears the pointer only while it still references sessionID.
	ClearActiveSessionIf(ctx context.Context, userID, sessionID string) (bool, error)
	// ListWithActiveSession pages through profiles holding a pointer, ordered by user_id.
	ListWithActiveSession(ctx context.Context, afterUserID string, limit int) ([]*UserProfile, error)
}
