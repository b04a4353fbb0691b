package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type SyncTimeCommand struct {
	SessionID      string
	UserID         string
	ElapsedSeconds int
	TimeRemaining  *int
}

type SyncTimeResult struct {
	SessionID         string `json:"session_id"`
	ActiveTimeSeconds int    `json:"active_time_seconds"`
	TimeRemaining     *int   `json:"time_remaining,omitempty"`
	// TimeExpired tells the client to end the exam.
	TimeExpired bool `json:"time_expired"`
}

// SyncTimeUseCase stores client-side timer readings. Active time never moves
// backwards and remaining time is clamped to the exam limit.
type SyncTimeUseCase struct {
	sessionRepo quizsession.Repository
	logger      logger.Interface
}

func NewSyncTimeUseCase(sessionRepo quizsession.Repository, logger logger.Interface) *SyncTimeUseCase {
	return &SyncTimeUseCase{sessionRepo: sessionRepo, logger: logger}
}

func (uc *SyncTimeUseCase) Execute(ctx context.Context, cmd SyncTimeCommand) (*SyncTimeResult, error) {
	if cmd.ElapsedSeconds < 0 {
		return nil, errors.NewValidationError("elapsed seconds must not be negative")
	}
	s, err := loadOwnedSession(ctx, uc.sessionRepo, cmd.SessionID, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if !s.IsActive {
		return nil, errors.NewInvalidStateError("session is not active")
	}

	var remaining *int
	if cmd.TimeRemaining != nil {
		remaining = s.ClampTimeRemaining(*cmd.TimeRemaining)
	}
	if err := uc.sessionRepo.SyncTime(ctx, s.ID, s.UserID, cmd.ElapsedSeconds, remaining, biztime.NowUTC()); err != nil {
		uc.logger.Errorw("failed to sync session time", "session_id", s.ID, "error", err)
		return nil, errors.NewDownstreamError("failed to sync session time", err)
	}

	active := s.ActiveTimeSeconds
	if cmd.ElapsedSeconds > active {
		active = cmd.ElapsedSeconds
	}
	if remaining != nil {
		s.TimeRemaining = remaining
	}
	return &SyncTimeResult{
		SessionID:         s.ID,
		ActiveTimeSeconds: active,
		TimeRemaining:     s.TimeRemaining,
		TimeExpired:       s.TimeExpired(),
	}, nil
}
