package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type EndAuthSessionCommand struct {
	UserID    string
	SessionID string
}

// EndAuthSessionUseCase signs out one session. Ending an already ended
// session succeeds; another user's session is reported as not found.
type EndAuthSessionUseCase struct {
	sessionRepo authsession.Repository
	logger      logger.Interface
}

func NewEndAuthSessionUseCase(sessionRepo authsession.Repository, logger logger.Interface) *EndAuthSessionUseCase {
	return &EndAuthSessionUseCase{sessionRepo: sessionRepo, logger: logger}
}

func (uc *EndAuthSessionUseCase) Execute(ctx context.Context, cmd EndAuthSessionCommand) error {
	s, err := uc.sessionRepo.GetByID(ctx, cmd.SessionID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return err
		}
		return errors.NewDownstreamError("failed to load auth session", err)
	}
	if s.UserID != cmd.UserID {
		return errors.NewNotFoundError("auth session not found")
	}

	if _, err := uc.sessionRepo.Deactivate(ctx, cmd.SessionID, biztime.NowUTC()); err != nil {
		uc.logger.Errorw("failed to end auth session", "session_id", cmd.SessionID, "error", err)
		return errors.NewDownstreamError("failed to end auth session", err)
	}

	uc.logger.Infow("auth session ended", "user_id", cmd.UserID, "session_id", cmd.SessionID)
	return nil
}
