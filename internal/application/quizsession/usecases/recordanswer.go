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

type RecordAnswerCommand struct {
	SessionID  string
	UserID     string
	QuestionID uint
	Choice     string
	IsCorrect  bool
	TimeSpent  int
}

type RecordAnswerResult struct {
	Answer               *dto.AnswerDTO `json:"answer"`
	Status               string         `json:"status"`
	CurrentQuestionIndex int            `json:"current_question_index"`
	Degraded             []string       `json:"degraded,omitempty"`
}

// RecordAnswerUseCase stores an answer. The answer row is the primary write;
// cursor, activity and progress updates are best effort.
type RecordAnswerUseCase struct {
	sessionRepo  quizsession.Repository
	answerRepo   answer.AnswerRepository
	progressRepo answer.ProgressRepository
	tracker      *ActivityTracker
	observer     LifecycleObserver
	logger       logger.Interface
}

func NewRecordAnswerUseCase(
	sessionRepo quizsession.Repository,
	answerRepo answer.AnswerRepository,
	progressRepo answer.ProgressRepository,
	tracker *ActivityTracker,
	observer LifecycleObserver,
	logger logger.Interface,
) *RecordAnswerUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &RecordAnswerUseCase{
		sessionRepo:  sessionRepo,
		answerRepo:   answerRepo,
		progressRepo: progressRepo,
		tracker:      tracker,
		observer:     observer,
		logger:       logger,
	}
}

func (uc *RecordAnswerUseCase) Execute(ctx context.Context, cmd RecordAnswerCommand) (*RecordAnswerResult, error) {
	s, err := loadOwnedSession(ctx, uc.sessionRepo, cmd.SessionID, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if !s.IsActive || !s.Status.AcceptsAnswers() {
		return nil, errors.NewInvalidStateError("session does not accept answers in status " + s.Status.String())
	}

	order, err := uc.sessionRepo.QuestionOrder(ctx, s.ID, cmd.QuestionID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError("question is not part of this session")
		}
		return nil, errors.NewDownstreamError("failed to look up session question", err)
	}

	now := biztime.NowUTC()
	ans, err := answer.NewUserAnswer(cmd.UserID, s.ID, cmd.QuestionID, cmd.Choice, cmd.IsCorrect, cmd.TimeSpent, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.answerRepo.Upsert(ctx, ans); err != nil {
		uc.logger.Errorw("failed to save answer",
			"session_id", s.ID,
			"question_id", cmd.QuestionID,
			"error", err,
		)
		return nil, errors.NewDownstreamError("failed to save answer", err)
	}

	deg := &degradation{observer: uc.observer}

	prev := s.Status
	if s.Status == vo.StatusCreated {
		if err := s.Activate(); err != nil {
			return nil, lifecycleError(err)
		}
	}
	s.AdvanceCursor(order)
	if err := uc.sessionRepo.UpdateProgress(ctx, s); err != nil {
		uc.logger.Warnw("failed to advance session cursor", "session_id", s.ID, "error", err)
		deg.add(StepCursor)
	} else if s.Status != prev {
		uc.observer.SessionTransitioned(prev, s.Status)
	}

	if err := uc.tracker.Record(ctx, s, now); err != nil {
		uc.logger.Warnw("failed to record session activity", "session_id", s.ID, "error", err)
		deg.add(StepActiveTime)
	}

	if s.TrackProgress {
		if err := uc.progressRepo.RecordAttempt(ctx, cmd.UserID, cmd.QuestionID, cmd.IsCorrect, now); err != nil {
			uc.logger.Warnw("failed to record question progress",
				"user_id", cmd.UserID,
				"question_id", cmd.QuestionID,
				"error", err,
			)
			deg.add(StepProgress)
		}
	}

	return &RecordAnswerResult{
		Answer:               dto.ToAnswerDTO(ans),
		Status:               s.Status.String(),
		CurrentQuestionIndex: s.CurrentQuestionIndex,
		Degraded:             deg.list(),
	}, nil
}
