package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/dto"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

type ListHistoryQuery struct {
	UserID   string
	Page     int
	PageSize int
}

type ListHistoryResult struct {
	Sessions []*dto.QuizSessionDTO `json:"sessions"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

type ListHistoryUseCase struct {
	sessionRepo quizsession.Repository
	logger      logger.Interface
}

func NewListHistoryUseCase(sessionRepo quizsession.Repository, logger logger.Interface) *ListHistoryUseCase {
	return &ListHistoryUseCase{sessionRepo: sessionRepo, logger: logger}
}

func (uc *ListHistoryUseCase) Execute(ctx context.Context, query ListHistoryQuery) (*ListHistoryResult, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)

	list, total, err := uc.sessionRepo.ListByUser(ctx, query.UserID, p.Page, p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list quiz history", "user_id", query.UserID, "error", err)
		return nil, errors.NewDownstreamError("failed to list quiz sessions", err)
	}
	return &ListHistoryResult{
		Sessions: dto.ToQuizSessionDTOs(list),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
