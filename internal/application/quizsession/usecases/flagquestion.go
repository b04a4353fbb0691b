package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type FlagQuestionCommand struct {
	SessionID  string
	UserID     string
	QuestionID uint
	Flagged    bool
}

type FlagQuestionResult struct {
	QuestionID uint `json:"question_id"`
	Flagged    bool `json:"flagged"`
}

// FlagQuestionUseCase marks a question for review. Flags live on the user's
// progress row and are kept regardless of the session's track_progress.
type FlagQuestionUseCase struct {
	sessionRepo  quizsession.Repository
	progressRepo answer.ProgressRepository
	logger       logger.Interface
}

func NewFlagQuestionUseCase(sessionRepo quizsession.Repository, progressRepo answer.ProgressRepository, logger logger.Interface) *FlagQuestionUseCase {
	return &FlagQuestionUseCase{sessionRepo: sessionRepo, progressRepo: progressRepo, logger: logger}
}

func (uc *FlagQuestionUseCase) Execute(ctx context.Context, cmd FlagQuestionCommand) (*FlagQuestionResult, error) {
	s, err := loadOwnedSession(ctx, uc.sessionRepo, cmd.SessionID, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.sessionRepo.QuestionOrder(ctx, s.ID, cmd.QuestionID); err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError("question is not part of this session")
		}
		return nil, errors.NewDownstreamError("failed to look up session question", err)
	}

	if err := uc.progressRepo.SetFlag(ctx, cmd.UserID, cmd.QuestionID, cmd.Flagged, biztime.NowUTC()); err != nil {
		uc.logger.Errorw("failed to flag question", "question_id", cmd.QuestionID, "error", err)
		return nil, errors.NewDownstreamError("failed to flag question", err)
	}
	return &FlagQuestionResult{QuestionID: cmd.QuestionID, Flagged: cmd.Flagged}, nil
}
