// Package quizsession is the quiz-taking aggregate: its status machine,
// timing fields and the metrics captured at pause and completion.
package quizsession

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/id"
)

var (
	ErrInvalidTransition = errors.New("invalid session status transition")
	ErrSessionInactive   = errors.New("session is not active")
)

type QuizSession struct {
	ID                   string
	UserID               string
	Name                 string
	Type                 vo.SessionType
	Mode                 string
	Status               vo.SessionStatus
	IsActive             bool
	IsPaused             bool
	TrackProgress        bool
	TotalQuestions       int
	CurrentQuestionIndex int
	// TimeLimit is in minutes, TimeRemaining in seconds. Both are nil for practice sessions.
	TimeLimit         *int
	TimeRemaining     *int
	QuestionsOrder    []uint
	Filters           question.Filter
	ActiveTimeSeconds int
	ActivityVersion   int
	TotalTimeSpent    int
	Metrics           Metrics
	CreatedAt         time.Time
	LastActivityAt    *time.Time
	MetricsCapturedAt *time.Time
	CompletedAt       *time.Time
	AbandonedAt       *time.Time
}

// SessionQuestion places a question in a session at a 1-based position.
type SessionQuestion struct {
	SessionID  string
	QuestionID uint
	Order      int
}

type CreateParams struct {
	UserID        string
	Name          string
	Type          vo.SessionType
	Mode          string
	Filters       question.Filter
	QuestionIDs   []uint
	TimeLimit     *int
	Randomize     bool
	TrackProgress bool
}

// NewQuizSession builds a session in the created state along with its
// ordered question rows. Exam sessions always track progress.
func NewQuizSession(p CreateParams, now time.Time) (*QuizSession, []SessionQuestion, error) {
	if p.UserID == "" {
		return nil, nil, fmt.Errorf("user ID is required")
	}
	if !p.Type.IsValid() {
		return nil, nil, fmt.Errorf("invalid session type: %s", p.Type)
	}
	if len(p.QuestionIDs) == 0 {
		return nil, nil, fmt.Errorf("at least one question is required")
	}
	if p.Type.IsTimed() && (p.TimeLimit == nil || *p.TimeLimit <= 0) {
		return nil, nil, fmt.Errorf("exam sessions require a positive time limit")
	}

	seen := make(map[uint]struct{}, len(p.QuestionIDs))
	order := make([]uint, 0, len(p.QuestionIDs))
	for _, qid := range p.QuestionIDs {
		if _, dup := seen[qid]; dup {
			continue
		}
		seen[qid] = struct{}{}
		order = append(order, qid)
	}
	if p.Randomize {
		rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	sessionID, err := id.NewQuizSessionID()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	s := &QuizSession{
		ID:             sessionID,
		UserID:         p.UserID,
		Name:           p.Name,
		Type:           p.Type,
		Mode:           p.Mode,
		Status:         vo.StatusCreated,
		IsActive:       true,
		TrackProgress:  p.TrackProgress || p.Type.IsTimed(),
		TotalQuestions: len(order),
		QuestionsOrder: order,
		Filters:        p.Filters,
		CreatedAt:      now,
		Metrics:        ComputeMetrics(len(order), 0, 0),
	}
	if s.Name == "" {
		s.Name = fmt.Sprintf("%s session %s", p.Type, now.Format("2006-01-02 15:04"))
	}
	if p.Type.IsTimed() {
		limit := *p.TimeLimit
		remaining := limit * 60
		s.TimeLimit = &limit
		s.TimeRemaining = &remaining
	}

	rows := make([]SessionQuestion, len(order))
	for i, qid := range order {
		rows[i] = SessionQuestion{SessionID: s.ID, QuestionID: qid, Order: i + 1}
	}
	return s, rows, nil
}

// IsOwnedBy reports whether userID owns the session.
func (s *QuizSession) IsOwnedBy(userID string) bool {
	return s.UserID == userID
}

func (s *QuizSession) transition(next vo.SessionStatus) error {
	if !s.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, next)
	}
	s.Status = next
	return nil
}

// Activate moves a created or paused session to active. Activating an
// active session is a no-op.
func (s *QuizSession) Activate() error {
	if !s.IsActive {
		return ErrSessionInactive
	}
	if s.Status == vo.StatusActive {
		return nil
	}
	if err := s.transition(vo.StatusActive); err != nil {
		return err
	}
	s.IsPaused = false
	return nil
}

// ClampTimeRemaining bounds a client supplied remaining time to
// [0, time_limit*60]. Practice sessions have no remaining time.
func (s *QuizSession) ClampTimeRemaining(seconds int) *int {
	if !s.Type.IsTimed() || s.TimeLimit == nil {
		return nil
	}
	max := *s.TimeLimit * 60
	if seconds < 0 {
		seconds = 0
	}
	if seconds > max {
		seconds = max
	}
	return &seconds
}

// AdvanceCursor moves the question cursor to the position after an answer
// to the question at 1-based order, staying inside [0, total).
func (s *QuizSession) AdvanceCursor(order int) {
	idx := order
	if idx > s.TotalQuestions-1 {
		idx = s.TotalQuestions - 1
	}
	if idx < 0 {
		idx = 0
	}
	s.CurrentQuestionIndex = idx
}

// Pause captures a metrics snapshot and moves the session to paused.
func (s *QuizSession) Pause(m Metrics, timeRemaining *int, now time.Time) error {
	if !s.IsActive {
		return ErrSessionInactive
	}
	if s.Status != vo.StatusPaused {
		if err := s.transition(vo.StatusPaused); err != nil {
			return err
		}
	}
	s.IsPaused = true
	s.captureMetrics(m, now)
	if timeRemaining != nil {
		s.TimeRemaining = s.ClampTimeRemaining(*timeRemaining)
	}
	return nil
}

// SnapshotMatches reports whether a captured snapshot still describes the answers.
func (s *QuizSession) SnapshotMatches(current Metrics) bool {
	return s.MetricsCapturedAt != nil && s.Metrics == current
}

// Complete finalizes the session with the given metrics. A paused session
// whose snapshot still matches m keeps it as is, including its time spent. It returns
// false, leaving the stored metrics untouched, when the session was already completed.
func (s *QuizSession) Complete(m Metrics, now time.Time) (bool, error) {
	if s.Status == vo.StatusCompleted {
		return false, nil
	}
	reuse := s.Status == vo.StatusPaused && s.SnapshotMatches(m)
	if err := s.transition(vo.StatusCompleted); err != nil {
		return false, err
	}
	s.IsActive = false
	s.IsPaused = false
	s.CompletedAt = &now
	if !reuse {
		s.captureMetrics(m, now)
	}
	return true, nil
}

// Abandon closes an idle session, keeping whatever metrics it accumulated.
func (s *QuizSession) Abandon(m Metrics, now time.Time) error {
	if err := s.transition(vo.StatusAbandoned); err != nil {
		return err
	}
	s.IsActive = false
	s.IsPaused = false
	s.AbandonedAt = &now
	s.captureMetrics(m, now)
	return nil
}

func (s *QuizSession) captureMetrics(m Metrics, now time.Time) {
	s.Metrics = m
	s.TotalTimeSpent = int(now.Sub(s.CreatedAt).Seconds())
	s.MetricsCapturedAt = &now
}

// LastSeen is the later of the last recorded activity and creation.
func (s *QuizSession) LastSeen() time.Time {
	if s.LastActivityAt != nil && s.LastActivityAt.After(s.CreatedAt) {
		return *s.LastActivityAt
	}
	return s.CreatedAt
}

// IdleLongerThan reports whether an open session has seen no activity for d.
func (s *QuizSession) IdleLongerThan(d time.Duration, now time.Time) bool {
	return s.IsActive && now.Sub(s.LastSeen()) > d
}

// ActivityDelta returns the seconds to credit for activity at now, given the
// previous activity stamp. Gaps longer than maxGap count as zero.
func ActivityDelta(last *time.Time, now time.Time, maxGap time.Duration) int {
	if last == nil {
		return 0
	}
	gap := now.Sub(*last)
	if gap <= 0 || gap > maxGap {
		return 0
	}
	return int(gap.Seconds())
}

// Score is a convenience for s.Metrics.Score().
func (s *QuizSession) Score() float64 {
	return s.Metrics.Score()
}

// TimeExpired reports whether a timed session has run out of time.
func (s *QuizSession) TimeExpired() bool {
	return s.Type.IsTimed() && s.TimeRemaining != nil && *s.TimeRemaining == 0
}
