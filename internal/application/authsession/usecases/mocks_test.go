package usecases

import (
	"context"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
)

type mockAuthSessionRepository struct {
	CreateFunc              func(ctx context.Context, s *authsession.AuthSession) error
	GetByIDFunc             func(ctx context.Context, sessionID string) (*authsession.AuthSession, error)
	ListActiveByUserFunc    func(ctx context.Context, userID string) ([]*authsession.AuthSession, error)
	ListByUserFunc          func(ctx context.Context, userID string, limit int) ([]*authsession.AuthSession, error)
	DeactivateFunc          func(ctx context.Context, sessionID string, endedAt time.Time) (bool, error)
	DeactivateAllByUserFunc func(ctx context.Context, userID string, endedAt time.Time) (int64, error)
	TouchFunc               func(ctx context.Context, sessionID string, at time.Time) error
	DeleteEndedBeforeFunc   func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockAuthSessionRepository) Create(ctx context.Context, s *authsession.AuthSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *mockAuthSessionRepository) GetByID(ctx context.Context, sessionID string) (*authsession.AuthSession, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockAuthSessionRepository) ListActiveByUser(ctx context.Context, userID string) ([]*authsession.AuthSession, error) {
	if m.ListActiveByUserFunc != nil {
		return m.ListActiveByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockAuthSessionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*authsession.AuthSession, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockAuthSessionRepository) Deactivate(ctx context.Context, sessionID string, endedAt time.Time) (bool, error) {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, sessionID, endedAt)
	}
	return true, nil
}

func (m *mockAuthSessionRepository) DeactivateAllByUser(ctx context.Context, userID string, endedAt time.Time) (int64, error) {
	if m.DeactivateAllByUserFunc != nil {
		return m.DeactivateAllByUserFunc(ctx, userID, endedAt)
	}
	return 0, nil
}

func (m *mockAuthSessionRepository) Touch(ctx context.Context, sessionID string, at time.Time) error {
	if m.TouchFunc != nil {
		return m.TouchFunc(ctx, sessionID, at)
	}
	return nil
}

func (m *mockAuthSessionRepository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteEndedBeforeFunc != nil {
		return m.DeleteEndedBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

type mockProfileRepository struct {
	EnsureExistsFunc          func(ctx context.Context, p *profile.UserProfile) error
	GetByUserIDFunc           func(ctx context.Context, userID string) (*profile.UserProfile, error)
	LockForUpdateFunc         func(ctx context.Context, userID string) (*profile.UserProfile, error)
	SetActiveSessionFunc      func(ctx context.Context, userID, sessionID string) error
	ClearActiveSessionIfFunc  func(ctx context.Context, userID, sessionID string) (bool, error)
	ListWithActiveSessionFunc func(ctx context.Context, afterUserID string, limit int) ([]*profile.UserProfile, error)
}

func (m *mockProfileRepository) EnsureExists(ctx context.Context, p *profile.UserProfile) error {
	if m.EnsureExistsFunc != nil {
		return m.EnsureExistsFunc(ctx, p)
	}
	return nil
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID string) (*profile.UserProfile, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return &profile.UserProfile{UserID: userID}, nil
}

func (m *mockProfileRepository) LockForUpdate(ctx context.Context, userID string) (*profile.UserProfile, error) {
	if m.LockForUpdateFunc != nil {
		return m.LockForUpdateFunc(ctx, userID)
	}
	return &profile.UserProfile{UserID: userID}, nil
}

func (m *mockProfileRepository) SetActiveSession(ctx context.Context, userID, sessionID string) error {
	if m.SetActiveSessionFunc != nil {
		return m.SetActiveSessionFunc(ctx, userID, sessionID)
	}
	return nil
}

func (m *mockProfileRepository) ClearActiveSessionIf(ctx context.Context, userID, sessionID string) (bool, error) {
	if m.ClearActiveSessionIfFunc != nil {
		return m.ClearActiveSessionIfFunc(ctx, userID, sessionID)
	}
	return true, nil
}

func (m *mockProfileRepository) ListWithActiveSession(ctx context.Context, afterUserID string, limit int) ([]*profile.UserProfile, error) {
	if m.ListWithActiveSessionFunc != nil {
		return m.ListWithActiveSessionFunc(ctx, afterUserID, limit)
	}
	return nil, nil
}

// inlineTransactor runs fn directly, returning its error.
type inlineTransactor struct {
	calls int
}

func (t *inlineTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type countingRecorder struct {
	evicted int
}

func (r *countingRecorder) AuthSessionsEvicted(n int) { r.evicted += n }
