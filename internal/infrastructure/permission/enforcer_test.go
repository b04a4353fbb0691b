package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) (*Enforcer, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e, err := NewEnforcer(db, "", logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, InitDefaultPolicies(e, logger.NewNopLogger()))
	return e, db
}

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e, _ := newTestEnforcer(t)

	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{"user", ResourceQuizSession, ActionWrite, true},
		{"user", ResourceReport, ActionRead, true},
		{"user", ResourceHousekeeping, ActionRun, false},
		{"user", ResourceQuestion, ActionWrite, false},
		{"admin", ResourceHousekeeping, ActionRun, true},
		{"admin", ResourceQuizSession, ActionWrite, true},
		{"guest", ResourceQuizSession, ActionRead, false},
	}
	for _, tc := range cases {
		got, err := e.Enforce(tc.role, tc.resource, tc.action)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s %s", tc.role, tc.resource, tc.action)
	}
}

func TestEnforcer_PoliciesPersistAcrossInstances(t *testing.T) {
	e, db := newTestEnforcer(t)
	require.NoError(t, e.AddPolicy("user", "beta_feature", ActionRead))

	reloaded, err := NewEnforcer(db, "", logger.NewNopLogger())
	require.NoError(t, err)

	ok, err := reloaded.Enforce("user", "beta_feature", ActionRead)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reloaded.Enforce("admin", ResourceHousekeeping, ActionRun)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, reloaded.RemovePolicy("user", "beta_feature", ActionRead))
	ok, _ = reloaded.Enforce("user", "beta_feature", ActionRead)
	assert.False(t, ok)
}

func TestInitDefaultPolicies_Idempotent(t *testing.T) {
	e, _ := newTestEnforcer(t)
	require.NoError(t, InitDefaultPolicies(e, logger.NewNopLogger()))

	ok, err := e.Enforce("user", ResourceNote, ActionWrite)
	require.NoError(t, err)
	assert.True(t, ok)
}
