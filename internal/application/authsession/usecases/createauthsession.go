package usecases

import (
	"context"
	"fmt"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/authsession/dto"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/db"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type CreateAuthSessionCommand struct {
	UserID      string
	Email       string
	DisplayName string
	IsAdmin     bool
	UserAgent   string
	IPAddress   string
}

type CreateAuthSessionResult struct {
	Session     *dto.AuthSessionDTO `json:"session"`
	Deactivated []string            `json:"deactivated"`
	Degraded    []string            `json:"degraded,omitempty"`
}

// EvictionRecorder is told how many sessions the limiter ended.
type EvictionRecorder interface {
	AuthSessionsEvicted(n int)
}

type nopEvictionRecorder struct{}

func (nopEvictionRecorder) AuthSessionsEvicted(int) {}

// CreateAuthSessionUseCase records a login and enforces the per-user cap on
// concurrent sessions. The read, evict and insert steps run in one
// transaction holding the user's profile row lock.
type CreateAuthSessionUseCase struct {
	sessionRepo   authsession.Repository
	profileRepo   profile.Repository
	txMgr         db.Transactor
	maxConcurrent int
	recorder      EvictionRecorder
	logger        logger.Interface
}

func NewCreateAuthSessionUseCase(
	sessionRepo authsession.Repository,
	profileRepo profile.Repository,
	txMgr db.Transactor,
	maxConcurrent int,
	logger logger.Interface,
) *CreateAuthSessionUseCase {
	if maxConcurrent < 1 {
		maxConcurrent = authsession.DefaultMaxConcurrent
	}
	return &CreateAuthSessionUseCase{
		sessionRepo:   sessionRepo,
		profileRepo:   profileRepo,
		txMgr:         txMgr,
		maxConcurrent: maxConcurrent,
		recorder:      nopEvictionRecorder{},
		logger:        logger,
	}
}

// WithRecorder reports evictions to r.
func (uc *CreateAuthSessionUseCase) WithRecorder(r EvictionRecorder) *CreateAuthSessionUseCase {
	if r != nil {
		uc.recorder = r
	}
	return uc
}

func (uc *CreateAuthSessionUseCase) Execute(ctx context.Context, cmd CreateAuthSessionCommand) (*CreateAuthSessionResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewUnauthorizedError("missing caller identity")
	}

	now := biztime.NowUTC()
	session, err := authsession.NewAuthSession(cmd.UserID, authsession.DeviceInfo{
		UserAgent: cmd.UserAgent,
		IPAddress: cmd.IPAddress,
	}, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	result := &CreateAuthSessionResult{Deactivated: []string{}}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.profileRepo.EnsureExists(txCtx, &profile.UserProfile{
			UserID:      cmd.UserID,
			Email:       cmd.Email,
			DisplayName: cmd.DisplayName,
			IsAdmin:     cmd.IsAdmin,
		}); err != nil {
			return fmt.Errorf("failed to ensure profile: %w", err)
		}
		if _, err := uc.profileRepo.LockForUpdate(txCtx, cmd.UserID); err != nil {
			return fmt.Errorf("failed to lock profile: %w", err)
		}

		active, err := uc.sessionRepo.ListActiveByUser(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to list active sessions: %w", err)
		}

		for _, old := range authsession.SelectEvictions(active, uc.maxConcurrent) {
			var changed bool
			// each eviction gets its own savepoint so one failure does not poison the transaction
			err := uc.txMgr.RunInTransaction(txCtx, func(spCtx context.Context) error {
				var derr error
				changed, derr = uc.sessionRepo.Deactivate(spCtx, old.ID, now)
				return derr
			})
			if err != nil {
				uc.logger.Warnw("failed to deactivate old auth session, skipping",
					"user_id", cmd.UserID,
					"session_id", old.ID,
					"error", err,
				)
				result.Degraded = append(result.Degraded, "deactivate_session:"+old.ID)
				continue
			}
			if changed {
				result.Deactivated = append(result.Deactivated, old.ID)
			}
		}

		if err := uc.sessionRepo.Create(txCtx, session); err != nil {
			return fmt.Errorf("failed to create auth session: %w", err)
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("failed to create auth session", "user_id", cmd.UserID, "error", txErr)
		return nil, errors.NewDownstreamError("failed to create auth session", txErr)
	}

	if n := len(result.Deactivated); n > 0 {
		uc.recorder.AuthSessionsEvicted(n)
	}
	result.Session = dto.ToAuthSessionDTO(session, session.ID)

	uc.logger.Infow("auth session created",
		"user_id", cmd.UserID,
		"session_id", session.ID,
		"deactivated", len(result.Deactivated),
	)
	return result, nil
}
