// Package authsession models authenticated login sessions and the
// per-user concurrency cap enforced when a new one is created.
package authsession

import (
	"fmt"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/id"
)

// DefaultMaxConcurrent is the number of sessions a user may hold at once.
const DefaultMaxConcurrent = 2

// DeviceInfo describes the client that authenticated.
type DeviceInfo struct {
	UserAgent string
	IPAddress string
}

type AuthSession struct {
	ID           string
	UserID       string
	IsActive     bool
	UserAgent    string
	IPAddress    string
	CreatedAt    time.Time
	LastActivity time.Time
	EndedAt      *time.Time
}

func NewAuthSession(userID string, device DeviceInfo, now time.Time) (*AuthSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	return &AuthSession{
		ID:           id.NewAuthSessionID(),
		UserID:       userID,
		IsActive:     true,
		UserAgent:    device.UserAgent,
		IPAddress:    device.IPAddress,
		CreatedAt:    now,
		LastActivity: now,
	}, nil
}

// Deactivate ends the session. Ending an inactive session keeps its original end time.
func (s *AuthSession) Deactivate(now time.Time) {
	if !s.IsActive {
		return
	}
	s.IsActive = false
	s.EndedAt = &now
}

// EligibleForPurge reports whether an ended session is older than cutoff.
func (s *AuthSession) EligibleForPurge(cutoff time.Time) bool {
	if s.IsActive {
		return false
	}
	ref := s.LastActivity
	if s.EndedAt != nil {
		ref = *s.EndedAt
	}
	return ref.Before(cutoff)
}

// SelectEvictions returns the sessions that must be deactivated so that one
// more session can be added without exceeding max. active must be ordered
// newest first; the newest max-1 are kept.
func SelectEvictions(active []*AuthSession, max int) []*AuthSession {
	if max < 1 {
		max = 1
	}
	keep := max - 1
	if len(active) <= keep {
		return nil
	}
	return active[keep:]
}
