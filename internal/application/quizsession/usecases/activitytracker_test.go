package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

func TestActivityTracker_CreditsGapWithinLimit(t *testing.T) {
	now := time.Now().UTC()
	last := now.Add(-40 * time.Second)
	s := newPracticeSession("u1", 2, false)
	s.LastActivityAt = &last
	s.ActivityVersion = 3

	var gotAdd int
	repo := &mockSessionRepository{
		CompareAndTouchFunc: func(ctx context.Context, id, userID string, expected quizsession.ActivityStamp, at time.Time, add int) (bool, error) {
			assert.Equal(t, 3, expected.Version)
			gotAdd = add
			return true, nil
		},
	}

	require.NoError(t, NewActivityTracker(repo, time.Minute, logger.NewNopLogger()).Record(context.Background(), s, now))
	assert.Equal(t, 40, gotAdd)
	assert.Equal(t, 40, s.ActiveTimeSeconds)
	assert.Equal(t, 4, s.ActivityVersion)
	assert.Equal(t, now, *s.LastActivityAt)
}

func TestActivityTracker_RestartCreditsNothing(t *testing.T) {
	now := time.Now().UTC()
	last := now.Add(-3 * time.Minute)
	s := newPracticeSession("u1", 2, false)
	s.LastActivityAt = &last
	s.ActiveTimeSeconds = 90
	s.ActivityVersion = 5

	calls := 0
	repo := &mockSessionRepository{
		CompareAndTouchFunc: func(ctx context.Context, id, userID string, expected quizsession.ActivityStamp, at time.Time, add int) (bool, error) {
			calls++
			assert.Equal(t, 5, expected.Version)
			assert.Zero(t, add)
			assert.Equal(t, now, at)
			return true, nil
		},
	}

	require.NoError(t, NewActivityTracker(repo, 5*time.Minute, logger.NewNopLogger()).Restart(context.Background(), s, now))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 90, s.ActiveTimeSeconds)
	assert.Equal(t, 6, s.ActivityVersion)
	assert.Equal(t, now, *s.LastActivityAt)
}

func TestActivityTracker_IgnoresLongGap(t *testing.T) {
	now := time.Now().UTC()
	last := now.Add(-2 * time.Hour)
	s := newPracticeSession("u1", 2, false)
	s.LastActivityAt = &last

	repo := &mockSessionRepository{
		CompareAndTouchFunc: func(ctx context.Context, id, userID string, expected quizsession.ActivityStamp, at time.Time, add int) (bool, error) {
			assert.Zero(t, add)
			return true, nil
		},
	}
	require.NoError(t, NewActivityTracker(repo, 5*time.Minute, logger.NewNopLogger()).Record(context.Background(), s, now))
	assert.Zero(t, s.ActiveTimeSeconds)
}

func TestActivityTracker_ReloadsOnConflict(t *testing.T) {
	now := time.Now().UTC()
	s := newPracticeSession("u1", 2, false)
	otherStamp := now.Add(-10 * time.Second)

	calls := 0
	repo := &mockSessionRepository{
		CompareAndTouchFunc: func(ctx context.Context, id, userID string, expected quizsession.ActivityStamp, at time.Time, add int) (bool, error) {
			calls++
			if calls == 1 {
				return false, nil
			}
			assert.Equal(t, 7, expected.Version)
			assert.Equal(t, 10, add)
			return true, nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*quizsession.QuizSession, error) {
			fresh := *s
			fresh.ActivityVersion = 7
			fresh.ActiveTimeSeconds = 100
			fresh.LastActivityAt = &otherStamp
			return &fresh, nil
		},
	}

	require.NoError(t, NewActivityTracker(repo, time.Minute, logger.NewNopLogger()).Record(context.Background(), s, now))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 110, s.ActiveTimeSeconds)
	assert.Equal(t, 8, s.ActivityVersion)
}

func TestActivityTracker_GivesUpAfterRetries(t *testing.T) {
	s := newPracticeSession("u1", 2, false)
	repo := &mockSessionRepository{
		CompareAndTouchFunc: func(ctx context.Context, id, userID string, expected quizsession.ActivityStamp, at time.Time, add int) (bool, error) {
			return false, nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*quizsession.QuizSession, error) {
			return s, nil
		},
	}

	err := NewActivityTracker(repo, time.Minute, logger.NewNopLogger()).Record(context.Background(), s, time.Now())
	assert.ErrorIs(t, err, errActivityContention)
}
