package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/dto"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type PauseSessionCommand struct {
	SessionID     string
	UserID        string
	TimeRemaining *int
}

// PauseSessionUseCase credits active time up to now, snapshots the answer
// counts and pauses the session.
type PauseSessionUseCase struct {
	sessionRepo quizsession.Repository
	answerRepo  answer.AnswerRepository
	tracker     *ActivityTracker
	observer    LifecycleObserver
	logger      logger.Interface
}

func NewPauseSessionUseCase(
	sessionRepo quizsession.Repository,
	answerRepo answer.AnswerRepository,
	tracker *ActivityTracker,
	observer LifecycleObserver,
	logger logger.Interface,
) *PauseSessionUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &PauseSessionUseCase{
		sessionRepo: sessionRepo,
		answerRepo:  answerRepo,
		tracker:     tracker,
		observer:    observer,
		logger:      logger,
	}
}

func (uc *PauseSessionUseCase) Execute(ctx context.Context, cmd PauseSessionCommand) (*dto.QuizSessionDTO, error) {
	s, err := loadOwnedSession(ctx, uc.sessionRepo, cmd.SessionID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	m, err := sessionMetrics(ctx, uc.answerRepo, s)
	if err != nil {
		return nil, errors.NewDownstreamError("failed to count answers", err)
	}

	now := biztime.NowUTC()
	prev := s.Status
	if prev == vo.StatusActive {
		if err := uc.tracker.Record(ctx, s, now); err != nil {
			uc.logger.Warnw("failed to record session activity", "session_id", s.ID, "error", err)
		}
	}
	if err := s.Pause(m, cmd.TimeRemaining, now); err != nil {
		return nil, lifecycleError(err)
	}
	save := uc.sessionRepo.Update
	if cmd.TimeRemaining != nil {
		save = uc.sessionRepo.UpdateWithTimer
	}
	if err := save(ctx, s); err != nil {
		uc.logger.Errorw("failed to pause quiz session", "session_id", s.ID, "error", err)
		return nil, errors.NewDownstreamError("failed to pause quiz session", err)
	}
	if prev != s.Status {
		uc.observer.SessionTransitioned(prev, s.Status)
	}

	uc.logger.Infow("quiz session paused",
		"session_id", s.ID,
		"correct", m.Correct,
		"incorrect", m.Incorrect,
		"unanswered", m.Unanswered,
	)
	return dto.ToQuizSessionDTO(s), nil
}
