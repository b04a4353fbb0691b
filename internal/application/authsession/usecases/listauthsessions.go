package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/authsession/dto"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

const listAuthSessionsLimit = 50

type ListAuthSessionsQuery struct {
	UserID           string
	CurrentSessionID string
	ActiveOnly       bool
}

type ListAuthSessionsUseCase struct {
	sessionRepo authsession.Repository
	logger      logger.Interface
}

func NewListAuthSessionsUseCase(sessionRepo authsession.Repository, logger logger.Interface) *ListAuthSessionsUseCase {
	return &ListAuthSessionsUseCase{sessionRepo: sessionRepo, logger: logger}
}

func (uc *ListAuthSessionsUseCase) Execute(ctx context.Context, query ListAuthSessionsQuery) ([]*dto.AuthSessionDTO, error) {
	var (
		list []*authsession.AuthSession
		err  error
	)
	if query.ActiveOnly {
		list, err = uc.sessionRepo.ListActiveByUser(ctx, query.UserID)
	} else {
		list, err = uc.sessionRepo.ListByUser(ctx, query.UserID, listAuthSessionsLimit)
	}
	if err != nil {
		uc.logger.Errorw("failed to list auth sessions", "user_id", query.UserID, "error", err)
		return nil, errors.NewDownstreamError("failed to list auth sessions", err)
	}
	return dto.ToAuthSessionDTOs(list, query.CurrentSessionID), nil
}
