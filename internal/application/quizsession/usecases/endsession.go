package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/dto"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type EndSessionCommand struct {
	SessionID string
	UserID    string
}

type EndSessionResult struct {
	Session          *dto.QuizSessionDTO `json:"session"`
	AlreadyCompleted bool                `json:"already_completed"`
	Degraded         []string            `json:"degraded,omitempty"`
}

// EndSessionUseCase completes a session. Ending a completed session returns
// its stored metrics.
type EndSessionUseCase struct {
	sessionRepo quizsession.Repository
	answerRepo  answer.AnswerRepository
	profileRepo profile.Repository
	observer    LifecycleObserver
	logger      logger.Interface
}

func NewEndSessionUseCase(
	sessionRepo quizsession.Repository,
	answerRepo answer.AnswerRepository,
	profileRepo profile.Repository,
	observer LifecycleObserver,
	logger logger.Interface,
) *EndSessionUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &EndSessionUseCase{
		sessionRepo: sessionRepo,
		answerRepo:  answerRepo,
		profileRepo: profileRepo,
		observer:    observer,
		logger:      logger,
	}
}

func (uc *EndSessionUseCase) Execute(ctx context.Context, cmd EndSessionCommand) (*EndSessionResult, error) {
	s, err := loadOwnedSession(ctx, uc.sessionRepo, cmd.SessionID, cmd.UserID)
	if err != nil {
		return nil, err
	}
	switch s.Status {
	case vo.StatusCompleted:
		return &EndSessionResult{Session: dto.ToQuizSessionDTO(s), AlreadyCompleted: true}, nil
	case vo.StatusAbandoned:
		return nil, errors.NewInvalidStateError("session was abandoned")
	}

	m, err := sessionMetrics(ctx, uc.answerRepo, s)
	if err != nil {
		return nil, errors.NewDownstreamError("failed to count answers", err)
	}

	prev := s.Status
	if _, err := s.Complete(m, biztime.NowUTC()); err != nil {
		return nil, lifecycleError(err)
	}
	if err := uc.sessionRepo.Update(ctx, s); err != nil {
		uc.logger.Errorw("failed to complete quiz session", "session_id", s.ID, "error", err)
		return nil, errors.NewDownstreamError("failed to complete quiz session", err)
	}
	uc.observer.SessionTransitioned(prev, s.Status)

	deg := &degradation{observer: uc.observer}
	if _, err := uc.profileRepo.ClearActiveSessionIf(ctx, s.UserID, s.ID); err != nil {
		uc.logger.Warnw("failed to clear active session pointer", "session_id", s.ID, "error", err)
		deg.add(StepActivePointer)
	}

	uc.logger.Infow("quiz session completed",
		"session_id", s.ID,
		"score", s.Score(),
		"total_time_spent", s.TotalTimeSpent,
	)
	return &EndSessionResult{Session: dto.ToQuizSessionDTO(s), Degraded: deg.list()}, nil
}
