package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/dto"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type GetActiveTimeQuery struct {
	SessionID string
	UserID    string
}

type GetActiveTimeUseCase struct {
	sessionRepo quizsession.Repository
	logger      logger.Interface
}

func NewGetActiveTimeUseCase(sessionRepo quizsession.Repository, logger logger.Interface) *GetActiveTimeUseCase {
	return &GetActiveTimeUseCase{sessionRepo: sessionRepo, logger: logger}
}

func (uc *GetActiveTimeUseCase) Execute(ctx context.Context, query GetActiveTimeQuery) (*dto.ActiveTimeDTO, error) {
	s, err := loadOwnedSession(ctx, uc.sessionRepo, query.SessionID, query.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.ActiveTimeDTO{
		SessionID:         s.ID,
		Status:            s.Status.String(),
		ActiveTimeSeconds: s.ActiveTimeSeconds,
		TimeRemaining:     s.TimeRemaining,
		LastActivityAt:    s.LastActivityAt,
	}, nil
}
