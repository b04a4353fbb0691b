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

// maxSweepRounds bounds one run when every batch keeps coming back full.
const maxSweepRounds = 50

type SweepAllResult struct {
	PointersCleared int      `json:"pointers_cleared"`
	Abandoned       int      `json:"abandoned"`
	Degraded        []string `json:"degraded,omitempty"`
}

// SweepAllUseCase runs the orphan repair across every user in batches.
type SweepAllUseCase struct {
	sw    *sweeper
	batch int
}

func NewSweepAllUseCase(
	sessionRepo quizsession.Repository,
	answerRepo answer.AnswerRepository,
	profileRepo profile.Repository,
	abandonAfter time.Duration,
	batch int,
	observer LifecycleObserver,
	logger logger.Interface,
) *SweepAllUseCase {
	if abandonAfter <= 0 {
		abandonAfter = DefaultAbandonAfter
	}
	if batch <= 0 {
		batch = DefaultSweepBatch
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &SweepAllUseCase{
		sw: &sweeper{
			sessionRepo:  sessionRepo,
			answerRepo:   answerRepo,
			profileRepo:  profileRepo,
			abandonAfter: abandonAfter,
			observer:     observer,
			logger:       logger,
		},
		batch: batch,
	}
}

func (uc *SweepAllUseCase) Execute(ctx context.Context) (*SweepAllResult, error) {
	sw := uc.sw
	result := &SweepAllResult{}
	deg := &degradation{observer: sw.observer}

	after := ""
	for round := 0; round < maxSweepRounds; round++ {
		profiles, err := sw.profileRepo.ListWithActiveSession(ctx, after, uc.batch)
		if err != nil {
			return nil, errors.NewDownstreamError("failed to list profiles", err)
		}
		for _, p := range profiles {
			cleared, err := sw.repairPointer(ctx, p)
			if err != nil {
				sw.logger.Warnw("failed to repair active session pointer", "user_id", p.UserID, "error", err)
				deg.add(StepActivePointer)
				continue
			}
			if cleared {
				result.PointersCleared++
			}
		}
		if len(profiles) < uc.batch {
			break
		}
		after = profiles[len(profiles)-1].UserID
	}

	now := biztime.NowUTC()
	cutoff := now.Add(-sw.abandonAfter)
	for round := 0; round < maxSweepRounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idle, err := sw.sessionRepo.ListIdle(ctx, "", cutoff, uc.batch)
		if err != nil {
			return nil, errors.NewDownstreamError("failed to list idle sessions", err)
		}
		progressed := 0
		for _, s := range idle {
			if sw.abandon(ctx, s, now, deg) {
				progressed++
			}
		}
		result.Abandoned += progressed
		// failed rows stay idle and would be listed again
		if len(idle) < uc.batch || progressed == 0 {
			break
		}
	}

	result.Degraded = deg.list()
	sw.logger.Infow("quiz session sweep finished",
		"pointers_cleared", result.PointersCleared,
		"abandoned", result.Abandoned,
		"degraded", len(result.Degraded),
	)
	return result, nil
}

// Name identifies the job in the scheduler.
func (uc *SweepAllUseCase) Name() string {
	return "quiz-session-sweep"
}

// RunBatch runs one sweep and reports how many sessions it touched.
func (uc *SweepAllUseCase) RunBatch(ctx context.Context) (int, error) {
	res, err := uc.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return res.PointersCleared + res.Abandoned, nil
}
