package usecases

import (
	"context"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type CleanupOrphanedSessionsCommand struct {
	UserID string
}

type CleanupOrphanedSessionsResult struct {
	PointerCleared bool     `json:"pointer_cleared"`
	Abandoned      []string `json:"abandoned"`
	Degraded       []string `json:"degraded,omitempty"`
}

// CleanupOrphanedSessionsUseCase repairs one user's session state: a pointer
// to a missing or closed session is cleared and idle sessions are abandoned.
type CleanupOrphanedSessionsUseCase struct {
	sw *sweeper
}

func NewCleanupOrphanedSessionsUseCase(
	sessionRepo quizsession.Repository,
	answerRepo answer.AnswerRepository,
	profileRepo profile.Repository,
	abandonAfter time.Duration,
	observer LifecycleObserver,
	logger logger.Interface,
) *CleanupOrphanedSessionsUseCase {
	if abandonAfter <= 0 {
		abandonAfter = DefaultAbandonAfter
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &CleanupOrphanedSessionsUseCase{sw: &sweeper{
		sessionRepo:  sessionRepo,
		answerRepo:   answerRepo,
		profileRepo:  profileRepo,
		abandonAfter: abandonAfter,
		observer:     observer,
		logger:       logger,
	}}
}

func (uc *CleanupOrphanedSessionsUseCase) Execute(ctx context.Context, cmd CleanupOrphanedSessionsCommand) (*CleanupOrphanedSessionsResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewUnauthorizedError("missing caller identity")
	}
	sw := uc.sw
	result := &CleanupOrphanedSessionsResult{Abandoned: []string{}}
	deg := &degradation{observer: sw.observer}

	p, err := sw.profileRepo.GetByUserID(ctx, cmd.UserID)
	switch {
	case err == nil:
		cleared, err := sw.repairPointer(ctx, p)
		if err != nil {
			return nil, errors.NewDownstreamError("failed to repair active session pointer", err)
		}
		result.PointerCleared = cleared
	case !errors.IsNotFoundError(err):
		return nil, errors.NewDownstreamError("failed to load profile", err)
	}

	now := biztime.NowUTC()
	idle, err := sw.sessionRepo.ListIdle(ctx, cmd.UserID, now.Add(-sw.abandonAfter), DefaultSweepBatch)
	if err != nil {
		return nil, errors.NewDownstreamError("failed to list idle sessions", err)
	}
	for _, s := range idle {
		pointed := p != nil && p.PointsAt(s.ID)
		if sw.abandon(ctx, s, now, deg) {
			result.Abandoned = append(result.Abandoned, s.ID)
			if pointed {
				result.PointerCleared = true
			}
		}
	}

	result.Degraded = deg.list()
	return result, nil
}
