package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type EndAllAuthSessionsCommand struct {
	UserID string
}

type EndAllAuthSessionsResult struct {
	Ended int64 `json:"ended"`
}

type EndAllAuthSessionsUseCase struct {
	sessionRepo authsession.Repository
	logger      logger.Interface
}

func NewEndAllAuthSessionsUseCase(sessionRepo authsession.Repository, logger logger.Interface) *EndAllAuthSessionsUseCase {
	return &EndAllAuthSessionsUseCase{sessionRepo: sessionRepo, logger: logger}
}

func (uc *EndAllAuthSessionsUseCase) Execute(ctx context.Context, cmd EndAllAuthSessionsCommand) (*EndAllAuthSessionsResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewUnauthorizedError("missing caller identity")
	}

	n, err := uc.sessionRepo.DeactivateAllByUser(ctx, cmd.UserID, biztime.NowUTC())
	if err != nil {
		uc.logger.Errorw("failed to end all auth sessions", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewDownstreamError("failed to end auth sessions", err)
	}

	uc.logger.Infow("signed out everywhere", "user_id", cmd.UserID, "ended", n)
	return &EndAllAuthSessionsResult{Ended: n}, nil
}
