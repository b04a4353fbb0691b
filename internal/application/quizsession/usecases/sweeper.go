package usecases

import (
	"context"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

const (
	DefaultAbandonAfter = 72 * time.Hour
	DefaultSweepBatch   = 200
)

// sweeper holds the repair steps shared by the per-user cleanup and the batch sweep.
type sweeper struct {
	sessionRepo  quizsession.Repository
	answerRepo   answer.AnswerRepository
	profileRepo  profile.Repository
	abandonAfter time.Duration
	observer     LifecycleObserver
	logger       logger.Interface
}

// repairPointer clears p's pointer when it references a missing, foreign or
// closed session. It reports whether the pointer was cleared.
func (sw *sweeper) repairPointer(ctx context.Context, p *profile.UserProfile) (bool, error) {
	if p.ActiveSessionID == nil {
		return false, nil
	}
	target := *p.ActiveSessionID

	s, err := sw.sessionRepo.GetByID(ctx, target)
	switch {
	case err != nil && !errors.IsNotFoundError(err):
		return false, err
	case err == nil && s.IsOwnedBy(p.UserID) && s.IsActive:
		return false, nil
	}

	cleared, err := sw.profileRepo.ClearActiveSessionIf(ctx, p.UserID, target)
	if err != nil {
		return false, err
	}
	if cleared {
		sw.logger.Infow("cleared dangling active session pointer",
			"user_id", p.UserID,
			"session_id", target,
		)
	}
	return cleared, nil
}

// abandon closes one idle session and releases the owner's pointer to it.
func (sw *sweeper) abandon(ctx context.Context, s *quizsession.QuizSession, now time.Time, deg *degradation) bool {
	m, err := sessionMetrics(ctx, sw.answerRepo, s)
	if err != nil {
		sw.logger.Warnw("failed to count answers of idle session", "session_id", s.ID, "error", err)
		deg.add(StepAbandon)
		return false
	}
	prev := s.Status
	if err := s.Abandon(m, now); err != nil {
		sw.logger.Warnw("idle session cannot be abandoned", "session_id", s.ID, "status", s.Status, "error", err)
		return false
	}
	if err := sw.sessionRepo.Update(ctx, s); err != nil {
		sw.logger.Warnw("failed to abandon idle session", "session_id", s.ID, "error", err)
		deg.add(StepAbandon)
		return false
	}
	sw.observer.SessionTransitioned(prev, s.Status)

	if _, err := sw.profileRepo.ClearActiveSessionIf(ctx, s.UserID, s.ID); err != nil {
		sw.logger.Warnw("failed to clear pointer to abandoned session", "session_id", s.ID, "error", err)
		deg.add(StepActivePointer)
	}
	sw.logger.Infow("idle quiz session abandoned",
		"user_id", s.UserID,
		"session_id", s.ID,
		"last_seen", s.LastSeen(),
	)
	return true
}
