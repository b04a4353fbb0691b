package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/models"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/repository"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/db"
	apperrors "github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/services/markdown"
)

type engine struct {
	gdb      *gorm.DB
	sessions *repository.QuizSessionRepository
	profiles *repository.UserProfileRepository
	answers  *repository.UserAnswerRepository
	progress *repository.UserQuestionProgressRepository
	notes    *repository.UserNoteRepository

	create   *CreateQuizSessionUseCase
	activate *ActivateSessionUseCase
	record   *RecordAnswerUseCase
	flag     *FlagQuestionUseCase
	pause    *PauseSessionUseCase
	end      *EndSessionUseCase
	sync     *SyncTimeUseCase
	results  *GetResultsUseCase
	active   *GetActiveQuizSessionUseCase
	cleanup  *CleanupOrphanedSessionsUseCase
	sweep    *SweepAllUseCase
}

func newEngine(t *testing.T) *engine {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	log := logger.NewNopLogger()
	e := &engine{
		gdb:      gdb,
		sessions: repository.NewQuizSessionRepository(gdb),
		profiles: repository.NewUserProfileRepository(gdb),
		answers:  repository.NewUserAnswerRepository(gdb),
		progress: repository.NewUserQuestionProgressRepository(gdb),
		notes:    repository.NewUserNoteRepository(gdb),
	}
	questions := repository.NewQuestionRepository(gdb)
	for i := uint(1); i <= 6; i++ {
		specialty := "cardiology"
		if i%2 == 0 {
			specialty = "neurology"
		}
		require.NoError(t, questions.Upsert(context.Background(), &question.Question{
			ID:                  i,
			Specialty:           specialty,
			ExamType:            "step1",
			Year:                2024,
			Difficulty:          question.DifficultyMedium,
			Stem:                "stem",
			Choices:             map[string]string{"A": "a", "B": "b", "C": "c"},
			CorrectChoiceLetter: "A",
			Explanation:         "**because**",
		}))
	}

	tracker := NewActivityTracker(e.sessions, 5*time.Minute, log)
	e.cleanup = NewCleanupOrphanedSessionsUseCase(e.sessions, e.answers, e.profiles, 72*time.Hour, nil, log)
	e.create = NewCreateQuizSessionUseCase(e.sessions, questions, e.profiles, db.NewTransactionManager(gdb), e.cleanup, nil, log)
	e.activate = NewActivateSessionUseCase(e.sessions, e.profiles, tracker, nil, log)
	e.record = NewRecordAnswerUseCase(e.sessions, e.answers, e.progress, tracker, nil, log)
	e.flag = NewFlagQuestionUseCase(e.sessions, e.progress, log)
	e.pause = NewPauseSessionUseCase(e.sessions, e.answers, tracker, nil, log)
	e.end = NewEndSessionUseCase(e.sessions, e.answers, e.profiles, nil, log)
	e.sync = NewSyncTimeUseCase(e.sessions, log)
	e.results = NewGetResultsUseCase(e.sessions, questions, e.answers, e.progress, e.notes, markdown.NewMarkdownService(), log)
	e.active = NewGetActiveQuizSessionUseCase(e.sessions, e.profiles, log)
	e.sweep = NewSweepAllUseCase(e.sessions, e.answers, e.profiles, 72*time.Hour, 2, nil, log)
	return e
}

func (e *engine) answer(t *testing.T, sessionID, userID string, qid uint, choice string, correct bool) {
	t.Helper()
	res, err := e.record.Execute(context.Background(), RecordAnswerCommand{
		SessionID: sessionID, UserID: userID, QuestionID: qid, Choice: choice, IsCorrect: correct, TimeSpent: 20,
	})
	require.NoError(t, err)
	require.Empty(t, res.Degraded)
}

func TestLifecycle_PracticePauseThenEnd(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	created, err := e.create.Execute(ctx, CreateQuizSessionCommand{
		UserID:      "user-1",
		SessionType: "practice",
		QuestionIDs: []uint{1, 2, 3, 4, 5},
	})
	require.NoError(t, err)
	s := created.Session
	assert.Equal(t, "created", s.Status)
	assert.False(t, s.TrackProgress)
	assert.Nil(t, s.TimeRemaining)

	active, err := e.active.Execute(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, s.ID, active.ID)

	_, err = e.activate.Execute(ctx, ActivateSessionCommand{SessionID: s.ID, UserID: "user-1"})
	require.NoError(t, err)

	e.answer(t, s.ID, "user-1", 1, "A", true)
	e.answer(t, s.ID, "user-1", 2, "B", false)
	e.answer(t, s.ID, "user-1", 3, "A", true)

	paused, err := e.pause.Execute(ctx, PauseSessionCommand{SessionID: s.ID, UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "paused", paused.Status)
	assert.Equal(t, quizsession.Metrics{Correct: 2, Incorrect: 1, Unanswered: 2}, paused.Metrics)

	progress, err := e.progress.ListByQuestions(ctx, "user-1", []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Empty(t, progress)

	ended, err := e.end.Execute(ctx, EndSessionCommand{SessionID: s.ID, UserID: "user-1"})
	require.NoError(t, err)
	assert.False(t, ended.AlreadyCompleted)
	assert.Empty(t, ended.Degraded)
	assert.Equal(t, paused.Metrics, ended.Session.Metrics)
	assert.Equal(t, paused.TotalTimeSpent, ended.Session.TotalTimeSpent)
	assert.Equal(t, "completed", ended.Session.Status)
	assert.False(t, ended.Session.IsActive)
	m := ended.Session.Metrics
	assert.Equal(t, ended.Session.TotalQuestions, m.Correct+m.Incorrect+m.Unanswered)

	again, err := e.end.Execute(ctx, EndSessionCommand{SessionID: s.ID, UserID: "user-1"})
	require.NoError(t, err)
	assert.True(t, again.AlreadyCompleted)
	assert.Equal(t, ended.Session.Metrics, again.Session.Metrics)

	_, err = e.active.Execute(ctx, "user-1")
	assert.True(t, apperrors.IsNotFoundError(err))

	p, err := e.profiles.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, p.ActiveSessionID)
}

// shiftActivity moves the stored last activity stamp back by d, as if that
// much wall time had passed since it was written.
func (e *engine) shiftActivity(t *testing.T, sessionID string, d time.Duration) {
	t.Helper()
	got, err := e.sessions.GetByID(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, got.LastActivityAt)
	require.NoError(t, e.gdb.Model(&models.QuizSessionModel{}).
		Where("id = ?", sessionID).
		Update("last_activity_at", got.LastActivityAt.Add(-d)).Error)
}

func (e *engine) activeSeconds(t *testing.T, sessionID string) int {
	t.Helper()
	got, err := e.sessions.GetByID(context.Background(), sessionID)
	require.NoError(t, err)
	return got.ActiveTimeSeconds
}

func TestLifecycle_PausedTimeIsNotActive(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	created, err := e.create.Execute(ctx, CreateQuizSessionCommand{
		UserID:      "user-1",
		SessionType: "practice",
		QuestionIDs: []uint{1, 2, 3},
	})
	require.NoError(t, err)
	id := created.Session.ID

	_, err = e.activate.Execute(ctx, ActivateSessionCommand{SessionID: id, UserID: "user-1"})
	require.NoError(t, err)
	e.answer(t, id, "user-1", 1, "A", true)

	// two minutes of work before pausing are credited by the pause
	e.shiftActivity(t, id, 2*time.Minute)
	before := e.activeSeconds(t, id)
	_, err = e.pause.Execute(ctx, PauseSessionCommand{SessionID: id, UserID: "user-1"})
	require.NoError(t, err)
	atPause := e.activeSeconds(t, id)
	assert.InDelta(t, before+120, atPause, 1)

	// three minutes paused are not
	e.shiftActivity(t, id, 3*time.Minute)
	res, err := e.activate.Execute(ctx, ActivateSessionCommand{SessionID: id, UserID: "user-1", Resume: true})
	require.NoError(t, err)
	assert.Empty(t, res.Degraded)
	assert.Equal(t, "active", res.Session.Status)
	assert.Equal(t, atPause, e.activeSeconds(t, id))

	got, err := e.sessions.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.LastActivityAt)
	assert.WithinDuration(t, time.Now().UTC(), *got.LastActivityAt, 5*time.Second)
}

// syncDuringAnswer runs hook between RecordAnswer's load and its cursor write.
type syncDuringAnswer struct {
	*repository.QuizSessionRepository
	hook func()
}

func (r *syncDuringAnswer) QuestionOrder(ctx context.Context, sessionID string, questionID uint) (int, error) {
	if r.hook != nil {
		r.hook()
		r.hook = nil
	}
	return r.QuizSessionRepository.QuestionOrder(ctx, sessionID, questionID)
}

func TestLifecycle_AnswerKeepsConcurrentTimerSync(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	limit := 10

	created, err := e.create.Execute(ctx, CreateQuizSessionCommand{
		UserID:      "user-1",
		SessionType: "exam",
		QuestionIDs: []uint{1, 2, 3},
		TimeLimit:   &limit,
	})
	require.NoError(t, err)
	id := created.Session.ID

	sessions := &syncDuringAnswer{QuizSessionRepository: e.sessions}
	sessions.hook = func() {
		rem := 550
		_, err := e.sync.Execute(ctx, SyncTimeCommand{SessionID: id, UserID: "user-1", ElapsedSeconds: 50, TimeRemaining: &rem})
		require.NoError(t, err)
	}
	log := logger.NewNopLogger()
	record := NewRecordAnswerUseCase(sessions, e.answers, e.progress, NewActivityTracker(sessions, 5*time.Minute, log), nil, log)

	res, err := record.Execute(ctx, RecordAnswerCommand{
		SessionID: id, UserID: "user-1", QuestionID: 1, Choice: "A", IsCorrect: true, TimeSpent: 20,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Degraded)

	got, err := e.sessions.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, got.Status)
	assert.Equal(t, 1, got.CurrentQuestionIndex)
	require.NotNil(t, got.TimeRemaining)
	assert.Equal(t, 550, *got.TimeRemaining)
	assert.GreaterOrEqual(t, got.ActiveTimeSeconds, 50)
}

func TestLifecycle_ResubmittedAnswerOverwrites(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	created, err := e.create.Execute(ctx, CreateQuizSessionCommand{
		UserID:        "user-1",
		SessionType:   "practice",
		QuestionIDs:   []uint{1, 2},
		TrackProgress: true,
	})
	require.NoError(t, err)
	id := created.Session.ID

	e.answer(t, id, "user-1", 1, "B", false)
	e.answer(t, id, "user-1", 1, "A", true)

	answers, err := e.answers.ListBySession(ctx, "user-1", id)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "A", answers[0].SelectedChoiceLetter)
	assert.True(t, answers[0].IsCorrect)

	progress, err := e.progress.ListByQuestions(ctx, "user-1", []uint{1})
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 2, progress[0].TimesAttempted)
	assert.Equal(t, 1, progress[0].TimesCorrect)
}

func TestLifecycle_ExamSyncTimeClamps(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	limit := 10

	created, err := e.create.Execute(ctx, CreateQuizSessionCommand{
		UserID:      "user-1",
		SessionType: "exam",
		QuestionIDs: []uint{1, 2, 3},
		TimeLimit:   &limit,
	})
	require.NoError(t, err)
	s := created.Session
	assert.True(t, s.TrackProgress)
	require.NotNil(t, s.TimeRemaining)
	assert.Equal(t, 600, *s.TimeRemaining)

	tests := []struct {
		remaining int
		want      int
		expired   bool
	}{
		{remaining: 550, want: 550},
		{remaining: 9000, want: 600},
		{remaining: -5, want: 0, expired: true},
	}
	for _, tt := range tests {
		rem := tt.remaining
		res, err := e.sync.Execute(ctx, SyncTimeCommand{SessionID: s.ID, UserID: "user-1", ElapsedSeconds: 50, TimeRemaining: &rem})
		require.NoError(t, err)
		require.NotNil(t, res.TimeRemaining)
		assert.Equal(t, tt.want, *res.TimeRemaining)
		assert.Equal(t, tt.expired, res.TimeExpired)

		stored, err := e.sessions.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, tt.want, *stored.TimeRemaining)
	}

	res, err := e.sync.Execute(ctx, SyncTimeCommand{SessionID: s.ID, UserID: "user-1", ElapsedSeconds: 10})
	require.NoError(t, err)
	assert.Equal(t, 50, res.ActiveTimeSeconds)
}

func TestLifecycle_ResultsView(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	created, err := e.create.Execute(ctx, CreateQuizSessionCommand{
		UserID:      "user-1",
		SessionType: "practice",
		QuestionIDs: []uint{2, 1},
	})
	require.NoError(t, err)
	id := created.Session.ID

	e.answer(t, id, "user-1", 1, "A", true)
	_, err = e.flag.Execute(ctx, FlagQuestionCommand{SessionID: id, UserID: "user-1", QuestionID: 2, Flagged: true})
	require.NoError(t, err)

	res, err := e.results.Execute(ctx, GetResultsQuery{SessionID: id, UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, uint(2), res.Items[0].QuestionID)
	assert.False(t, res.Items[0].Answered)
	assert.True(t, res.Items[0].Flagged)
	assert.Equal(t, uint(1), res.Items[1].QuestionID)
	assert.True(t, res.Items[1].IsCorrect)
	assert.Contains(t, res.Items[1].ExplanationHTML, "<strong>because</strong>")
	assert.Equal(t, quizsession.Metrics{Correct: 1, Unanswered: 1}, res.Metrics)
	assert.Equal(t, 100.0, res.Score)

	_, err = e.results.Execute(ctx, GetResultsQuery{SessionID: id, UserID: "user-2"})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestLifecycle_CreateByFilter(t *testing.T) {
	e := newEngine(t)

	created, err := e.create.Execute(context.Background(), CreateQuizSessionCommand{
		UserID:        "user-1",
		SessionType:   "practice",
		Filters:       question.Filter{Specialties: []string{"neurology"}},
		QuestionCount: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Session.TotalQuestions)
	assert.ElementsMatch(t, []uint{2, 4, 6}, created.Session.QuestionsOrder)

	_, err = e.create.Execute(context.Background(), CreateQuizSessionCommand{
		UserID:      "user-1",
		SessionType: "practice",
		Filters:     question.Filter{Specialties: []string{"dermatology"}},
	})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = e.create.Execute(context.Background(), CreateQuizSessionCommand{
		UserID:      "user-1",
		SessionType: "practice",
		QuestionIDs: []uint{1, 99},
	})
	assert.True(t, apperrors.IsValidationError(err))
}

func createIdleSession(t *testing.T, e *engine, userID string, age time.Duration) *quizsession.QuizSession {
	t.Helper()
	ctx := context.Background()
	s, rows, err := quizsession.NewQuizSession(quizsession.CreateParams{
		UserID:      userID,
		Type:        vo.TypePractice,
		QuestionIDs: []uint{1, 2, 3},
	}, time.Now().UTC().Add(-age))
	require.NoError(t, err)
	require.NoError(t, e.profiles.EnsureExists(ctx, &profile.UserProfile{UserID: userID}))
	require.NoError(t, e.sessions.Create(ctx, s, rows))
	require.NoError(t, e.profiles.SetActiveSession(ctx, userID, s.ID))
	return s
}

func TestCleanupOrphanedSessions(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	t.Run("dangling pointer is cleared", func(t *testing.T) {
		require.NoError(t, e.profiles.EnsureExists(ctx, &profile.UserProfile{UserID: "user-a"}))
		require.NoError(t, e.profiles.SetActiveSession(ctx, "user-a", "qs_missing"))

		res, err := e.cleanup.Execute(ctx, CleanupOrphanedSessionsCommand{UserID: "user-a"})
		require.NoError(t, err)
		assert.True(t, res.PointerCleared)
		assert.Empty(t, res.Abandoned)

		p, err := e.profiles.GetByUserID(ctx, "user-a")
		require.NoError(t, err)
		assert.Nil(t, p.ActiveSessionID)
	})

	t.Run("idle session is abandoned", func(t *testing.T) {
		s := createIdleSession(t, e, "user-b", 100*time.Hour)

		res, err := e.cleanup.Execute(ctx, CleanupOrphanedSessionsCommand{UserID: "user-b"})
		require.NoError(t, err)
		assert.Equal(t, []string{s.ID}, res.Abandoned)
		assert.True(t, res.PointerCleared)

		got, err := e.sessions.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, vo.StatusAbandoned, got.Status)
		assert.False(t, got.IsActive)
		assert.NotNil(t, got.AbandonedAt)
		assert.Equal(t, quizsession.Metrics{Unanswered: 3}, got.Metrics)
	})

	t.Run("fresh session is kept", func(t *testing.T) {
		s := createIdleSession(t, e, "user-c", time.Hour)

		res, err := e.cleanup.Execute(ctx, CleanupOrphanedSessionsCommand{UserID: "user-c"})
		require.NoError(t, err)
		assert.False(t, res.PointerCleared)
		assert.Empty(t, res.Abandoned)

		p, err := e.profiles.GetByUserID(ctx, "user-c")
		require.NoError(t, err)
		assert.True(t, p.PointsAt(s.ID))
	})
}

func TestSweepAll(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	idle := []*quizsession.QuizSession{
		createIdleSession(t, e, "user-1", 80*time.Hour),
		createIdleSession(t, e, "user-2", 90*time.Hour),
		createIdleSession(t, e, "user-3", 100*time.Hour),
	}
	fresh := createIdleSession(t, e, "user-4", time.Minute)
	require.NoError(t, e.profiles.EnsureExists(ctx, &profile.UserProfile{UserID: "user-5"}))
	require.NoError(t, e.profiles.SetActiveSession(ctx, "user-5", "qs_gone"))

	res, err := e.sweep.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Abandoned)
	assert.Equal(t, 1, res.PointersCleared)
	assert.Empty(t, res.Degraded)

	for _, s := range idle {
		got, err := e.sessions.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, vo.StatusAbandoned, got.Status)

		p, err := e.profiles.GetByUserID(ctx, s.UserID)
		require.NoError(t, err)
		assert.Nil(t, p.ActiveSessionID)
	}
	got, err := e.sessions.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	n, err := e.sweep.RunBatch(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
