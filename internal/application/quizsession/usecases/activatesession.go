package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/dto"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type ActivateSessionCommand struct {
	SessionID string
	UserID    string
	// Resume also points the user's active-session pointer back at the session.
	Resume bool
}

type ActivateSessionResult struct {
	Session  *dto.QuizSessionDTO `json:"session"`
	Degraded []string            `json:"degraded,omitempty"`
}

// ActivateSessionUseCase starts or resumes a session without crediting the
// time spent before it. Calling it on an already active session only records activity.
type ActivateSessionUseCase struct {
	sessionRepo quizsession.Repository
	profileRepo profile.Repository
	tracker     *ActivityTracker
	observer    LifecycleObserver
	logger      logger.Interface
}

func NewActivateSessionUseCase(
	sessionRepo quizsession.Repository,
	profileRepo profile.Repository,
	tracker *ActivityTracker,
	observer LifecycleObserver,
	logger logger.Interface,
) *ActivateSessionUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &ActivateSessionUseCase{
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		tracker:     tracker,
		observer:    observer,
		logger:      logger,
	}
}

func (uc *ActivateSessionUseCase) Execute(ctx context.Context, cmd ActivateSessionCommand) (*ActivateSessionResult, error) {
	s, err := loadOwnedSession(ctx, uc.sessionRepo, cmd.SessionID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	prev := s.Status
	if err := s.Activate(); err != nil {
		return nil, lifecycleError(err)
	}
	if s.Status != prev {
		if err := uc.sessionRepo.Update(ctx, s); err != nil {
			uc.logger.Errorw("failed to activate quiz session", "session_id", s.ID, "error", err)
			return nil, errors.NewDownstreamError("failed to activate quiz session", err)
		}
		uc.observer.SessionTransitioned(prev, s.Status)
	}

	deg := &degradation{observer: uc.observer}
	stamp := uc.tracker.Record
	if prev != vo.StatusActive {
		stamp = uc.tracker.Restart
	}
	if err := stamp(ctx, s, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("failed to record session activity", "session_id", s.ID, "error", err)
		deg.add(StepActiveTime)
	}
	if cmd.Resume {
		if err := uc.profileRepo.SetActiveSession(ctx, cmd.UserID, s.ID); err != nil {
			uc.logger.Warnw("failed to point profile at resumed session", "session_id", s.ID, "error", err)
			deg.add(StepActivePointer)
		}
	}

	uc.logger.Infow("quiz session activated",
		"session_id", s.ID,
		"from", prev,
		"resume", cmd.Resume,
	)
	return &ActivateSessionResult{Session: dto.ToQuizSessionDTO(s), Degraded: deg.list()}, nil
}
