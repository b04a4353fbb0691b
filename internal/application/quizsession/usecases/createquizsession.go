package usecases

import (
	"context"
	"fmt"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/dto"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/db"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

const (
	DefaultQuestionCount = 20
	MaxQuestionCount     = 200
)

type CreateQuizSessionCommand struct {
	UserID        string
	Name          string
	SessionType   string
	Mode          string
	Filters       question.Filter
	QuestionIDs   []uint
	QuestionCount int
	TimeLimit     *int
	Randomize     bool
	TrackProgress bool
}

type CreateQuizSessionResult struct {
	Session  *dto.QuizSessionDTO `json:"session"`
	Degraded []string            `json:"degraded,omitempty"`
}

// OrphanCleaner repairs a user's session state before a new session starts.
type OrphanCleaner interface {
	Execute(ctx context.Context, cmd CleanupOrphanedSessionsCommand) (*CleanupOrphanedSessionsResult, error)
}

// CreateQuizSessionUseCase writes a session, its question rows and the
// user's active-session pointer in one transaction.
type CreateQuizSessionUseCase struct {
	sessionRepo  quizsession.Repository
	questionRepo question.Repository
	profileRepo  profile.Repository
	txMgr        db.Transactor
	cleaner      OrphanCleaner
	observer     LifecycleObserver
	logger       logger.Interface
}

func NewCreateQuizSessionUseCase(
	sessionRepo quizsession.Repository,
	questionRepo question.Repository,
	profileRepo profile.Repository,
	txMgr db.Transactor,
	cleaner OrphanCleaner,
	observer LifecycleObserver,
	logger logger.Interface,
) *CreateQuizSessionUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &CreateQuizSessionUseCase{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		profileRepo:  profileRepo,
		txMgr:        txMgr,
		cleaner:      cleaner,
		observer:     observer,
		logger:       logger,
	}
}

func (uc *CreateQuizSessionUseCase) Execute(ctx context.Context, cmd CreateQuizSessionCommand) (*CreateQuizSessionResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewUnauthorizedError("missing caller identity")
	}
	sessionType, err := vo.NewSessionType(cmd.SessionType)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	deg := &degradation{observer: uc.observer}
	if uc.cleaner != nil {
		if _, err := uc.cleaner.Execute(ctx, CleanupOrphanedSessionsCommand{UserID: cmd.UserID}); err != nil {
			uc.logger.Warnw("orphan cleanup before session create failed", "user_id", cmd.UserID, "error", err)
			deg.add(StepOrphanCleanup)
		}
	}

	ids, err := uc.resolveQuestions(ctx, cmd)
	if err != nil {
		return nil, err
	}

	session, rows, err := quizsession.NewQuizSession(quizsession.CreateParams{
		UserID:        cmd.UserID,
		Name:          cmd.Name,
		Type:          sessionType,
		Mode:          cmd.Mode,
		Filters:       cmd.Filters,
		QuestionIDs:   ids,
		TimeLimit:     cmd.TimeLimit,
		Randomize:     cmd.Randomize,
		TrackProgress: cmd.TrackProgress,
	}, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.profileRepo.EnsureExists(txCtx, &profile.UserProfile{UserID: cmd.UserID}); err != nil {
			return fmt.Errorf("failed to ensure profile: %w", err)
		}
		if err := uc.sessionRepo.Create(txCtx, session, rows); err != nil {
			return err
		}
		return uc.profileRepo.SetActiveSession(txCtx, cmd.UserID, session.ID)
	})
	if err != nil {
		uc.logger.Errorw("failed to create quiz session", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewDownstreamError("failed to create quiz session", err)
	}

	uc.observer.SessionTransitioned("", vo.StatusCreated)
	uc.logger.Infow("quiz session created",
		"user_id", cmd.UserID,
		"session_id", session.ID,
		"type", session.Type,
		"total_questions", session.TotalQuestions,
	)

	return &CreateQuizSessionResult{
		Session:  dto.ToQuizSessionDTO(session),
		Degraded: deg.list(),
	}, nil
}

// resolveQuestions picks questions by filter when none were given and
// checks that explicitly chosen ones exist.
func (uc *CreateQuizSessionUseCase) resolveQuestions(ctx context.Context, cmd CreateQuizSessionCommand) ([]uint, error) {
	if len(cmd.QuestionIDs) == 0 {
		count := cmd.QuestionCount
		if count <= 0 {
			count = DefaultQuestionCount
		}
		if count > MaxQuestionCount {
			count = MaxQuestionCount
		}
		ids, err := uc.questionRepo.ListIDs(ctx, cmd.Filters, count)
		if err != nil {
			return nil, errors.NewDownstreamError("failed to select questions", err)
		}
		if len(ids) == 0 {
			return nil, errors.NewValidationError("no questions match the selected filters")
		}
		return ids, nil
	}

	if len(cmd.QuestionIDs) > MaxQuestionCount {
		return nil, errors.NewValidationError(fmt.Sprintf("at most %d questions per session", MaxQuestionCount))
	}
	found, err := uc.questionRepo.GetByIDs(ctx, cmd.QuestionIDs)
	if err != nil {
		return nil, errors.NewDownstreamError("failed to load questions", err)
	}
	known := make(map[uint]struct{}, len(found))
	for _, q := range found {
		known[q.ID] = struct{}{}
	}
	for _, qid := range cmd.QuestionIDs {
		if _, ok := known[qid]; !ok {
			return nil, errors.NewValidationError(fmt.Sprintf("question %d does not exist", qid))
		}
	}
	return cmd.QuestionIDs, nil
}
