package usecases

import (
	"context"
	"errors"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	apperrors "github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
)

// loadOwnedSession fetches a session scoped to userID. Sessions owned by
// someone else are reported as not found.
func loadOwnedSession(ctx context.Context, repo quizsession.Repository, sessionID, userID string) (*quizsession.QuizSession, error) {
	if sessionID == "" {
		return nil, apperrors.NewValidationError("session id is required")
	}
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("missing caller identity")
	}
	s, err := repo.GetByID(ctx, sessionID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("quiz session not found")
		}
		return nil, apperrors.NewDownstreamError("failed to load quiz session", err)
	}
	if !s.IsOwnedBy(userID) {
		return nil, apperrors.NewNotFoundError("quiz session not found")
	}
	return s, nil
}

// lifecycleError maps domain state errors to invalid_state.
func lifecycleError(err error) error {
	if errors.Is(err, quizsession.ErrInvalidTransition) || errors.Is(err, quizsession.ErrSessionInactive) {
		return apperrors.NewInvalidStateError(err.Error())
	}
	return apperrors.NewInternalError(err.Error())
}

// sessionMetrics counts the recorded answers of s.
func sessionMetrics(ctx context.Context, answers answerCounter, s *quizsession.QuizSession) (quizsession.Metrics, error) {
	correct, incorrect, err := answers.CountBySession(ctx, s.UserID, s.ID)
	if err != nil {
		return quizsession.Metrics{}, err
	}
	return quizsession.ComputeMetrics(s.TotalQuestions, correct, incorrect), nil
}

type answerCounter interface {
	CountBySession(ctx context.Context, userID, sessionID string) (correct, incorrect int, err error)
}
