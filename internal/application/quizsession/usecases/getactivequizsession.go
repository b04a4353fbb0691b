package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/dto"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

// GetActiveQuizSessionUseCase follows the profile pointer to the session the
// user is taking. A dangling pointer reads as no active session.
type GetActiveQuizSessionUseCase struct {
	sessionRepo quizsession.Repository
	profileRepo profile.Repository
	logger      logger.Interface
}

func NewGetActiveQuizSessionUseCase(sessionRepo quizsession.Repository, profileRepo profile.Repository, logger logger.Interface) *GetActiveQuizSessionUseCase {
	return &GetActiveQuizSessionUseCase{sessionRepo: sessionRepo, profileRepo: profileRepo, logger: logger}
}

func (uc *GetActiveQuizSessionUseCase) Execute(ctx context.Context, userID string) (*dto.QuizSessionDTO, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("no active quiz session")
		}
		return nil, errors.NewDownstreamError("failed to load profile", err)
	}
	if p.ActiveSessionID == nil {
		return nil, errors.NewNotFoundError("no active quiz session")
	}

	s, err := loadOwnedSession(ctx, uc.sessionRepo, *p.ActiveSessionID, userID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("no active quiz session")
		}
		return nil, err
	}
	if !s.IsActive {
		return nil, errors.NewNotFoundError("no active quiz session")
	}
	return dto.ToQuizSessionDTO(s), nil
}
