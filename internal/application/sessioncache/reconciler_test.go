package sessioncache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
	apperrors "github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type mapStore struct {
	data   map[string][]byte
	getErr error
}

func newMapStore() *mapStore { return &mapStore{data: map[string][]byte{}} }

func (m *mapStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *mapStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	m.data[key] = data
	return nil
}

func (m *mapStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type fakeSessions struct {
	sessions map[string]*quizsession.QuizSession
	answers  []*answer.UserAnswer
	pointer  *string
}

func (f *fakeSessions) GetByID(ctx context.Context, id string) (*quizsession.QuizSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("quiz session not found")
	}
	return s, nil
}

func (f *fakeSessions) ListBySession(ctx context.Context, userID, sessionID string) ([]*answer.UserAnswer, error) {
	return f.answers, nil
}

func (f *fakeSessions) GetByUserID(ctx context.Context, userID string) (*profile.UserProfile, error) {
	return &profile.UserProfile{UserID: userID, ActiveSessionID: f.pointer}, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestReconciler(store Store, f *fakeSessions, c *clock) *Reconciler {
	r := &Reconciler{
		store:    store,
		sessions: f,
		answers:  f,
		profiles: f,
		ttl:      DefaultTTL,
		logger:   logger.NewNopLogger(),
	}
	return r.WithClock(c.now)
}

var key = ClientKey{UserID: "u1", ClientID: "tab-1"}

func TestSaveLoad_ExpiresAfterTTL(t *testing.T) {
	store := newMapStore()
	c := &clock{t: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	r := newTestReconciler(store, &fakeSessions{}, c)
	ctx := context.Background()

	_, err := r.Save(ctx, key, &Snapshot{Session: SessionState{ID: "qs_1"}, UI: map[string]any{"panel": "notes"}})
	require.NoError(t, err)

	c.t = c.t.Add(23 * time.Hour)
	snap, err := r.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "notes", snap.UI["panel"])

	c.t = c.t.Add(2 * time.Hour)
	_, err = r.Load(ctx, key)
	assert.ErrorIs(t, err, ErrNoSnapshot)
	assert.Empty(t, store.data)
}

func TestUpdate_NeverCreates(t *testing.T) {
	store := newMapStore()
	r := newTestReconciler(store, &fakeSessions{}, &clock{t: time.Now()})
	idx := 3

	_, err := r.Update(context.Background(), key, Patch{CurrentQuestionIndex: &idx})
	assert.ErrorIs(t, err, ErrNoSnapshot)
	assert.Empty(t, store.data)
}

func TestUpdate_MergesAndRefreshes(t *testing.T) {
	store := newMapStore()
	c := &clock{t: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	r := newTestReconciler(store, &fakeSessions{}, c)
	ctx := context.Background()

	_, err := r.Save(ctx, key, &Snapshot{
		Session: SessionState{ID: "qs_1"},
		Flags:   map[uint]bool{1: true},
	})
	require.NoError(t, err)

	c.t = c.t.Add(20 * time.Hour)
	idx := 2
	snap, err := r.Update(ctx, key, Patch{
		CurrentQuestionIndex: &idx,
		Flags:                map[uint]bool{2: true},
		Answers:              map[uint]CachedAnswer{5: {Choice: "C"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Session.CurrentQuestionIndex)
	assert.Equal(t, map[uint]bool{1: true, 2: true}, snap.Flags)
	assert.Equal(t, "C", snap.Answers[5].Choice)

	// the update restarted the expiry window
	c.t = c.t.Add(20 * time.Hour)
	_, err = r.Load(ctx, key)
	require.NoError(t, err)
}

func TestClientKey_DefaultsClient(t *testing.T) {
	assert.Equal(t, "u1:default", ClientKey{UserID: "u1"}.String())
	assert.Equal(t, "u1:tab-1", key.String())
}

func activeSession() *quizsession.QuizSession {
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	remaining := 300
	return &quizsession.QuizSession{
		ID:                   "qs_1",
		UserID:               "u1",
		Type:                 vo.TypeExam,
		Status:               vo.StatusActive,
		IsActive:             true,
		TotalQuestions:       4,
		CurrentQuestionIndex: 2,
		TimeRemaining:        &remaining,
		LastActivityAt:       &at,
	}
}

func TestReconcile_ServerIsAuthoritative(t *testing.T) {
	store := newMapStore()
	c := &clock{t: time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)}
	f := &fakeSessions{
		sessions: map[string]*quizsession.QuizSession{"qs_1": activeSession()},
		answers: []*answer.UserAnswer{
			{QuestionID: 1, SelectedChoiceLetter: "A", IsCorrect: true},
			{QuestionID: 2, SelectedChoiceLetter: "D", IsCorrect: false},
		},
	}
	r := newTestReconciler(store, f, c)
	ctx := context.Background()

	_, err := r.Save(ctx, key, &Snapshot{
		Session: SessionState{ID: "qs_1", Status: "paused", CurrentQuestionIndex: 0},
		Answers: map[uint]CachedAnswer{
			1: {Choice: "B", Submitted: true},
			3: {Choice: "C"},
		},
		Notes: map[uint]string{3: "check renal dosing"},
		UI:    map[string]any{"font": "large"},
	})
	require.NoError(t, err)

	c.t = c.t.Add(time.Hour)
	res, err := r.Reconcile(ctx, key)
	require.NoError(t, err)

	assert.Equal(t, ActionResume, res.Action)
	assert.True(t, res.Stale)
	assert.Equal(t, []uint{3}, res.Pending)

	snap := res.Snapshot
	assert.Equal(t, "active", snap.Session.Status)
	assert.Equal(t, 2, snap.Session.CurrentQuestionIndex)
	assert.Equal(t, 300, *snap.Session.TimeRemaining)
	assert.Equal(t, "A", snap.Answers[1].Choice)
	assert.True(t, snap.Answers[1].Submitted)
	assert.Equal(t, "D", snap.Answers[2].Choice)
	assert.False(t, snap.Answers[3].Submitted)
	assert.Equal(t, "check renal dosing", snap.Notes[3])
	assert.Equal(t, "large", snap.UI["font"])

	stored, err := r.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "active", stored.Session.Status)
}

func TestReconcile_DiscardsClosedOrMissing(t *testing.T) {
	completed := activeSession()
	completed.IsActive = false
	completed.Status = vo.StatusCompleted
	foreign := activeSession()
	foreign.UserID = "u2"

	tests := []struct {
		name     string
		sessions map[string]*quizsession.QuizSession
	}{
		{name: "missing", sessions: map[string]*quizsession.QuizSession{}},
		{name: "completed", sessions: map[string]*quizsession.QuizSession{"qs_1": completed}},
		{name: "other owner", sessions: map[string]*quizsession.QuizSession{"qs_1": foreign}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMapStore()
			r := newTestReconciler(store, &fakeSessions{sessions: tt.sessions}, &clock{t: time.Now()})
			ctx := context.Background()

			_, err := r.Save(ctx, key, &Snapshot{Session: SessionState{ID: "qs_1"}})
			require.NoError(t, err)

			res, err := r.Reconcile(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, ActionDiscard, res.Action)
			assert.Nil(t, res.Snapshot)
			assert.Empty(t, store.data)
		})
	}
}

func TestResumeTarget(t *testing.T) {
	ctx := context.Background()

	t.Run("from cache", func(t *testing.T) {
		f := &fakeSessions{sessions: map[string]*quizsession.QuizSession{"qs_1": activeSession()}}
		r := newTestReconciler(newMapStore(), f, &clock{t: time.Now()})
		_, err := r.Save(ctx, key, &Snapshot{Session: SessionState{ID: "qs_1"}})
		require.NoError(t, err)

		target, err := r.ResumeTarget(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, &ResumeTarget{SessionID: "qs_1", Status: "active", Resume: true, Source: "cache"}, target)
	})

	t.Run("from profile pointer", func(t *testing.T) {
		ptr := "qs_1"
		f := &fakeSessions{sessions: map[string]*quizsession.QuizSession{"qs_1": activeSession()}, pointer: &ptr}
		r := newTestReconciler(newMapStore(), f, &clock{t: time.Now()})

		target, err := r.ResumeTarget(ctx, key)
		require.NoError(t, err)
		assert.True(t, target.Resume)
		assert.Equal(t, "profile", target.Source)
	})

	t.Run("nothing to resume", func(t *testing.T) {
		r := newTestReconciler(newMapStore(), &fakeSessions{sessions: map[string]*quizsession.QuizSession{}}, &clock{t: time.Now()})
		target, err := r.ResumeTarget(ctx, key)
		require.NoError(t, err)
		assert.False(t, target.Resume)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		store := newMapStore()
		store.getErr = errors.New("redis down")
		r := newTestReconciler(store, &fakeSessions{}, &clock{t: time.Now()})
		_, err := r.ResumeTarget(ctx, key)
		assert.True(t, apperrors.IsDownstreamError(err))
	})
}
