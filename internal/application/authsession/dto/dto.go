package dto

import (
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
)

type AuthSessionDTO struct {
	ID           string     `json:"id"`
	IsActive     bool       `json:"is_active"`
	UserAgent    string     `json:"user_agent,omitempty"`
	IPAddress    string     `json:"ip_address,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActivity time.Time  `json:"last_activity"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	Current      bool       `json:"current"`
}

func ToAuthSessionDTO(s *authsession.AuthSession, currentID string) *AuthSessionDTO {
	if s == nil {
		return nil
	}
	return &AuthSessionDTO{
		ID:           s.ID,
		IsActive:     s.IsActive,
		UserAgent:    s.UserAgent,
		IPAddress:    s.IPAddress,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
		EndedAt:      s.EndedAt,
		Current:      s.ID == currentID,
	}
}

func ToAuthSessionDTOs(list []*authsession.AuthSession, currentID string) []*AuthSessionDTO {
	out := make([]*AuthSessionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, ToAuthSessionDTO(s, currentID))
	}
	return out
}
