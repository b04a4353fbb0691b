// Package sessioncache keeps a single-slot mirror of a client's in-progress
// quiz session and merges it back into server state on resume.
package sessioncache

import (
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
)

// DefaultTTL is how long a snapshot stays loadable after its last save.
const DefaultTTL = 24 * time.Hour

// SessionState mirrors the server-owned fields of a quiz session.
type SessionState struct {
	ID                   string     `json:"id"`
	Status               string     `json:"status"`
	IsActive             bool       `json:"is_active"`
	IsPaused             bool       `json:"is_paused"`
	SessionType          string     `json:"session_type"`
	TotalQuestions       int        `json:"total_questions"`
	CurrentQuestionIndex int        `json:"current_question_index"`
	TimeRemaining        *int       `json:"time_remaining,omitempty"`
	ActiveTimeSeconds    int        `json:"active_time_seconds"`
	QuestionsOrder       []uint     `json:"questions_order"`
	LastActivityAt       *time.Time `json:"last_activity_at,omitempty"`
}

func stateFromSession(s *quizsession.QuizSession) SessionState {
	return SessionState{
		ID:                   s.ID,
		Status:               s.Status.String(),
		IsActive:             s.IsActive,
		IsPaused:             s.IsPaused,
		SessionType:          string(s.Type),
		TotalQuestions:       s.TotalQuestions,
		CurrentQuestionIndex: s.CurrentQuestionIndex,
		TimeRemaining:        s.TimeRemaining,
		ActiveTimeSeconds:    s.ActiveTimeSeconds,
		QuestionsOrder:       s.QuestionsOrder,
		LastActivityAt:       s.LastActivityAt,
	}
}

// CachedAnswer is an answer as the client last saw it. Submitted is true
// once the server has acknowledged it.
type CachedAnswer struct {
	Choice     string    `json:"choice"`
	IsCorrect  bool      `json:"is_correct"`
	TimeSpent  int       `json:"time_spent"`
	Submitted  bool      `json:"submitted"`
	AnsweredAt time.Time `json:"answered_at"`
}

type Snapshot struct {
	Session    SessionState          `json:"session"`
	Answers    map[uint]CachedAnswer `json:"answers"`
	Flags      map[uint]bool         `json:"flags"`
	Notes      map[uint]string       `json:"notes"`
	UI         map[string]any        `json:"ui"`
	LastCached time.Time             `json:"last_cached"`
}

func (s *Snapshot) normalize() {
	if s.Answers == nil {
		s.Answers = map[uint]CachedAnswer{}
	}
	if s.Flags == nil {
		s.Flags = map[uint]bool{}
	}
	if s.Notes == nil {
		s.Notes = map[uint]string{}
	}
	if s.UI == nil {
		s.UI = map[string]any{}
	}
}

// Expired reports whether the snapshot is older than ttl at now.
func (s *Snapshot) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastCached) > ttl
}

// Patch is a partial update. Map entries are merged key by key; nil fields are left alone.
type Patch struct {
	Session              *SessionState         `json:"session,omitempty"`
	CurrentQuestionIndex *int                  `json:"current_question_index,omitempty"`
	TimeRemaining        *int                  `json:"time_remaining,omitempty"`
	Answers              map[uint]CachedAnswer `json:"answers,omitempty"`
	Flags                map[uint]bool         `json:"flags,omitempty"`
	Notes                map[uint]string       `json:"notes,omitempty"`
	UI                   map[string]any        `json:"ui,omitempty"`
}

func (p Patch) applyTo(s *Snapshot) {
	if p.Session != nil {
		s.Session = *p.Session
	}
	if p.CurrentQuestionIndex != nil {
		s.Session.CurrentQuestionIndex = *p.CurrentQuestionIndex
	}
	if p.TimeRemaining != nil {
		remaining := *p.TimeRemaining
		s.Session.TimeRemaining = &remaining
	}
	for k, v := range p.Answers {
		s.Answers[k] = v
	}
	for k, v := range p.Flags {
		s.Flags[k] = v
	}
	for k, v := range p.Notes {
		s.Notes[k] = v
	}
	for k, v := range p.UI {
		s.UI[k] = v
	}
}
