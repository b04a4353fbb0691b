package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
	apperrors "github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

func TestEndAuthSession(t *testing.T) {
	owned := &authsession.AuthSession{ID: "s1", UserID: "u1", IsActive: true}

	tests := []struct {
		name      string
		cmd       EndAuthSessionCommand
		getErr    error
		wantCheck func(error) bool
		wantEnded bool
	}{
		{name: "owner ends session", cmd: EndAuthSessionCommand{UserID: "u1", SessionID: "s1"}, wantEnded: true},
		{name: "other user sees not found", cmd: EndAuthSessionCommand{UserID: "u2", SessionID: "s1"}, wantCheck: apperrors.IsNotFoundError},
		{name: "missing session", cmd: EndAuthSessionCommand{UserID: "u1", SessionID: "nope"}, getErr: apperrors.NewNotFoundError("auth session not found"), wantCheck: apperrors.IsNotFoundError},
		{name: "store failure", cmd: EndAuthSessionCommand{UserID: "u1", SessionID: "s1"}, getErr: errors.New("conn reset"), wantCheck: apperrors.IsDownstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ended bool
			repo := &mockAuthSessionRepository{
				GetByIDFunc: func(ctx context.Context, sessionID string) (*authsession.AuthSession, error) {
					if tt.getErr != nil {
						return nil, tt.getErr
					}
					return owned, nil
				},
				DeactivateFunc: func(ctx context.Context, sessionID string, endedAt time.Time) (bool, error) {
					ended = true
					return true, nil
				},
			}

			err := NewEndAuthSessionUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), tt.cmd)
			if tt.wantCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.wantCheck(err))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantEnded, ended)
		})
	}
}

func TestEndAllAuthSessions(t *testing.T) {
	repo := &mockAuthSessionRepository{
		DeactivateAllByUserFunc: func(ctx context.Context, userID string, endedAt time.Time) (int64, error) {
			assert.Equal(t, "u1", userID)
			return 2, nil
		},
	}

	res, err := NewEndAllAuthSessionsUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), EndAllAuthSessionsCommand{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Ended)
}

func TestListAuthSessions_MarksCurrent(t *testing.T) {
	repo := &mockAuthSessionRepository{
		ListActiveByUserFunc: func(ctx context.Context, userID string) ([]*authsession.AuthSession, error) {
			return activeSessions(userID, 2), nil
		},
		ListByUserFunc: func(ctx context.Context, userID string, limit int) ([]*authsession.AuthSession, error) {
			t.Fatal("history should not be read for active-only listing")
			return nil, nil
		},
	}

	out, err := NewListAuthSessionsUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), ListAuthSessionsQuery{
		UserID:           "u1",
		CurrentSessionID: "sb",
		ActiveOnly:       true,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.False(t, out[0].Current)
	assert.True(t, out[1].Current)
}

func TestCleanupAuthSessions(t *testing.T) {
	var gotCutoff time.Time
	repo := &mockAuthSessionRepository{
		DeleteEndedBeforeFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			gotCutoff = cutoff
			return 4, nil
		},
	}
	uc := NewCleanupAuthSessionsUseCase(repo, 30, logger.NewNopLogger())

	res, err := uc.Execute(context.Background(), CleanupAuthSessionsCommand{DaysOld: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Deleted)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -7), gotCutoff, time.Minute)

	n, err := uc.RunBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -30), gotCutoff, time.Minute)

	_, err = uc.Execute(context.Background(), CleanupAuthSessionsCommand{DaysOld: -1})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestTouchAuthSession_IgnoresEmptyID(t *testing.T) {
	repo := &mockAuthSessionRepository{
		TouchFunc: func(ctx context.Context, sessionID string, at time.Time) error {
			t.Fatal("touch should be skipped")
			return nil
		},
	}
	require.NoError(t, NewTouchAuthSessionUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), ""))
}
