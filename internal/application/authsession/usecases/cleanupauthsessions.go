package usecases

import (
	"context"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

const DefaultRetentionDays = 30

type CleanupAuthSessionsCommand struct {
	DaysOld int
}

type CleanupAuthSessionsResult struct {
	Deleted int64     `json:"deleted"`
	Cutoff  time.Time `json:"cutoff"`
}

// CleanupAuthSessionsUseCase hard-deletes ended sessions older than the
// retention window. Active sessions are never deleted.
type CleanupAuthSessionsUseCase struct {
	sessionRepo   authsession.Repository
	retentionDays int
	logger        logger.Interface
}

func NewCleanupAuthSessionsUseCase(sessionRepo authsession.Repository, retentionDays int, logger logger.Interface) *CleanupAuthSessionsUseCase {
	if retentionDays < 1 {
		retentionDays = DefaultRetentionDays
	}
	return &CleanupAuthSessionsUseCase{
		sessionRepo:   sessionRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

func (uc *CleanupAuthSessionsUseCase) Execute(ctx context.Context, cmd CleanupAuthSessionsCommand) (*CleanupAuthSessionsResult, error) {
	if cmd.DaysOld < 0 {
		return nil, errors.NewValidationError("days_old must not be negative")
	}
	days := cmd.DaysOld
	if days == 0 {
		days = uc.retentionDays
	}

	cutoff := biztime.NowUTC().AddDate(0, 0, -days)
	n, err := uc.sessionRepo.DeleteEndedBefore(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to clean up auth sessions", "cutoff", cutoff, "error", err)
		return nil, errors.NewDownstreamError("failed to clean up auth sessions", err)
	}

	uc.logger.Infow("auth sessions cleaned up", "deleted", n, "cutoff", cutoff)
	return &CleanupAuthSessionsResult{Deleted: n, Cutoff: cutoff}, nil
}

// Name identifies the job in the scheduler.
func (uc *CleanupAuthSessionsUseCase) Name() string {
	return "auth-session-cleanup"
}

// RunBatch runs one cleanup with the configured retention window.
func (uc *CleanupAuthSessionsUseCase) RunBatch(ctx context.Context) (int, error) {
	res, err := uc.Execute(ctx, CleanupAuthSessionsCommand{})
	if err != nil {
		return 0, err
	}
	return int(res.Deleted), nil
}
