package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

// TouchAuthSessionUseCase stamps last activity on the caller's session.
type TouchAuthSessionUseCase struct {
	sessionRepo authsession.Repository
	logger      logger.Interface
}

func NewTouchAuthSessionUseCase(sessionRepo authsession.Repository, logger logger.Interface) *TouchAuthSessionUseCase {
	return &TouchAuthSessionUseCase{sessionRepo: sessionRepo, logger: logger}
}

func (uc *TouchAuthSessionUseCase) Execute(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessionRepo.Touch(ctx, sessionID, biztime.NowUTC())
}
