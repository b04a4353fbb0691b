package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/authsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
)

func TestAuthSessionRepository_ActiveLifecycle(t *testing.T) {
	repo := NewAuthSessionRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		s, err := authsession.NewAuthSession("user-1", authsession.DeviceInfo{UserAgent: "ua"}, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, s))
		ids = append(ids, s.ID)
	}
	other, _ := authsession.NewAuthSession("user-2", authsession.DeviceInfo{}, base)
	require.NoError(t, repo.Create(ctx, other))

	active, err := repo.ListActiveByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, ids[2], active[0].ID, "newest first")

	changed, err := repo.Deactivate(ctx, ids[0], base.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.Deactivate(ctx, ids[0], base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, changed, "already inactive")

	_, err = repo.Deactivate(ctx, "missing", base)
	assert.True(t, errors.IsNotFoundError(err))

	got, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.EndedAt)
	assert.True(t, got.EndedAt.Equal(base.Add(time.Hour)))

	n, err := repo.DeactivateAllByUser(ctx, "user-1", base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	active, err = repo.ListActiveByUser(ctx, "user-2")
	require.NoError(t, err)
	assert.Len(t, active, 1, "other users untouched")
}

func TestAuthSessionRepository_TouchAndPurge(t *testing.T) {
	repo := NewAuthSessionRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	old, _ := authsession.NewAuthSession("user-1", authsession.DeviceInfo{}, base)
	fresh, _ := authsession.NewAuthSession("user-1", authsession.DeviceInfo{}, base)
	live, _ := authsession.NewAuthSession("user-1", authsession.DeviceInfo{}, base)
	for _, s := range []*authsession.AuthSession{old, fresh, live} {
		require.NoError(t, repo.Create(ctx, s))
	}

	require.NoError(t, repo.Touch(ctx, live.ID, base.Add(time.Hour)))
	_, err := repo.Deactivate(ctx, old.ID, base.Add(24*time.Hour))
	require.NoError(t, err)
	_, err = repo.Deactivate(ctx, fresh.ID, base.Add(40*24*time.Hour))
	require.NoError(t, err)

	assert.Error(t, repo.Touch(ctx, old.ID, base), "inactive sessions cannot be touched")

	deleted, err := repo.DeleteEndedBefore(ctx, base.Add(30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetByID(ctx, old.ID)
	assert.True(t, errors.IsNotFoundError(err))
	_, err = repo.GetByID(ctx, live.ID)
	assert.NoError(t, err)

	all, err := repo.ListByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
