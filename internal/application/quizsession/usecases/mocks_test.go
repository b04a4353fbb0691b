package usecases

import (
	"context"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/profile"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
)

type mockSessionRepository struct {
	CreateFunc              func(ctx context.Context, s *quizsession.QuizSession, questions []quizsession.SessionQuestion) error
	GetByIDFunc             func(ctx context.Context, sessionID string) (*quizsession.QuizSession, error)
	UpdateFunc              func(ctx context.Context, s *quizsession.QuizSession) error
	UpdateWithTimerFunc     func(ctx context.Context, s *quizsession.QuizSession) error
	UpdateProgressFunc      func(ctx context.Context, s *quizsession.QuizSession) error
	QuestionOrderFunc       func(ctx context.Context, sessionID string, questionID uint) (int, error)
	ListQuestionsFunc       func(ctx context.Context, sessionID string) ([]quizsession.SessionQuestion, error)
	ListByUserFunc          func(ctx context.Context, userID string, page, pageSize int) ([]*quizsession.QuizSession, int64, error)
	ListIdleFunc            func(ctx context.Context, userID string, idleBefore time.Time, limit int) ([]*quizsession.QuizSession, error)
	ListCompletedByUserFunc func(ctx context.Context, userID string, since time.Time) ([]*quizsession.QuizSession, error)
	CompareAndTouchFunc     func(ctx context.Context, sessionID, userID string, expected quizsession.ActivityStamp, now time.Time, addSeconds int) (bool, error)
	SyncTimeFunc            func(ctx context.Context, sessionID, userID string, elapsed int, remaining *int, now time.Time) error
}

func (m *mockSessionRepository) Create(ctx context.Context, s *quizsession.QuizSession, questions []quizsession.SessionQuestion) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s, questions)
	}
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, sessionID string) (*quizsession.QuizSession, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockSessionRepository) Update(ctx context.Context, s *quizsession.QuizSession) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionRepository) UpdateWithTimer(ctx context.Context, s *quizsession.QuizSession) error {
	if m.UpdateWithTimerFunc != nil {
		return m.UpdateWithTimerFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionRepository) UpdateProgress(ctx context.Context, s *quizsession.QuizSession) error {
	if m.UpdateProgressFunc != nil {
		return m.UpdateProgressFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionRepository) QuestionOrder(ctx context.Context, sessionID string, questionID uint) (int, error) {
	if m.QuestionOrderFunc != nil {
		return m.QuestionOrderFunc(ctx, sessionID, questionID)
	}
	return 1, nil
}

func (m *mockSessionRepository) ListQuestions(ctx context.Context, sessionID string) ([]quizsession.SessionQuestion, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockSessionRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*quizsession.QuizSession, int64, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockSessionRepository) ListIdle(ctx context.Context, userID string, idleBefore time.Time, limit int) ([]*quizsession.QuizSession, error) {
	if m.ListIdleFunc != nil {
		return m.ListIdleFunc(ctx, userID, idleBefore, limit)
	}
	return nil, nil
}

func (m *mockSessionRepository) ListCompletedByUser(ctx context.Context, userID string, since time.Time) ([]*quizsession.QuizSession, error) {
	if m.ListCompletedByUserFunc != nil {
		return m.ListCompletedByUserFunc(ctx, userID, since)
	}
	return nil, nil
}

func (m *mockSessionRepository) CompareAndTouch(ctx context.Context, sessionID, userID string, expected quizsession.ActivityStamp, now time.Time, addSeconds int) (bool, error) {
	if m.CompareAndTouchFunc != nil {
		return m.CompareAndTouchFunc(ctx, sessionID, userID, expected, now, addSeconds)
	}
	return true, nil
}

func (m *mockSessionRepository) SyncTime(ctx context.Context, sessionID, userID string, elapsed int, remaining *int, now time.Time) error {
	if m.SyncTimeFunc != nil {
		return m.SyncTimeFunc(ctx, sessionID, userID, elapsed, remaining, now)
	}
	return nil
}

type mockAnswerRepository struct {
	UpsertFunc         func(ctx context.Context, a *answer.UserAnswer) error
	ListBySessionFunc  func(ctx context.Context, userID, sessionID string) ([]*answer.UserAnswer, error)
	CountBySessionFunc func(ctx context.Context, userID, sessionID string) (int, int, error)
}

func (m *mockAnswerRepository) Upsert(ctx context.Context, a *answer.UserAnswer) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, a)
	}
	return nil
}

func (m *mockAnswerRepository) ListBySession(ctx context.Context, userID, sessionID string) ([]*answer.UserAnswer, error) {
	if m.ListBySessionFunc != nil {
		return m.ListBySessionFunc(ctx, userID, sessionID)
	}
	return nil, nil
}

func (m *mockAnswerRepository) CountBySession(ctx context.Context, userID, sessionID string) (int, int, error) {
	if m.CountBySessionFunc != nil {
		return m.CountBySessionFunc(ctx, userID, sessionID)
	}
	return 0, 0, nil
}

type mockProgressRepository struct {
	RecordAttemptFunc   func(ctx context.Context, userID string, questionID uint, correct bool, at time.Time) error
	SetFlagFunc         func(ctx context.Context, userID string, questionID uint, flagged bool, at time.Time) error
	ListByQuestionsFunc func(ctx context.Context, userID string, questionIDs []uint) ([]*answer.Progress, error)
}

func (m *mockProgressRepository) RecordAttempt(ctx context.Context, userID string, questionID uint, correct bool, at time.Time) error {
	if m.RecordAttemptFunc != nil {
		return m.RecordAttemptFunc(ctx, userID, questionID, correct, at)
	}
	return nil
}

func (m *mockProgressRepository) SetFlag(ctx context.Context, userID string, questionID uint, flagged bool, at time.Time) error {
	if m.SetFlagFunc != nil {
		return m.SetFlagFunc(ctx, userID, questionID, flagged, at)
	}
	return nil
}

func (m *mockProgressRepository) ListByQuestions(ctx context.Context, userID string, questionIDs []uint) ([]*answer.Progress, error) {
	if m.ListByQuestionsFunc != nil {
		return m.ListByQuestionsFunc(ctx, userID, questionIDs)
	}
	return nil, nil
}

type mockProfileRepository struct {
	GetByUserIDFunc           func(ctx context.Context, userID string) (*profile.UserProfile, error)
	SetActiveSessionFunc      func(ctx context.Context, userID, sessionID string) error
	ClearActiveSessionIfFunc  func(ctx context.Context, userID, sessionID string) (bool, error)
	ListWithActiveSessionFunc func(ctx context.Context, afterUserID string, limit int) ([]*profile.UserProfile, error)
}

func (m *mockProfileRepository) EnsureExists(ctx context.Context, p *profile.UserProfile) error {
	return nil
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID string) (*profile.UserProfile, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return &profile.UserProfile{UserID: userID}, nil
}

func (m *mockProfileRepository) LockForUpdate(ctx context.Context, userID string) (*profile.UserProfile, error) {
	return m.GetByUserID(ctx, userID)
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

type recordingObserver struct {
	transitions []string
	failures    []string
}

func (o *recordingObserver) SessionTransitioned(from, to vo.SessionStatus) {
	o.transitions = append(o.transitions, string(from)+"->"+string(to))
}

func (o *recordingObserver) SecondaryWriteFailed(step string) {
	o.failures = append(o.failures, step)
}

func newPracticeSession(userID string, total int, trackProgress bool) *quizsession.QuizSession {
	ids := make([]uint, total)
	for i := range ids {
		ids[i] = uint(i + 1)
	}
	s, _, err := quizsession.NewQuizSession(quizsession.CreateParams{
		UserID:        userID,
		Type:          vo.TypePractice,
		QuestionIDs:   ids,
		TrackProgress: trackProgress,
	}, time.Now().UTC().Add(-10*time.Minute))
	if err != nil {
		panic(err)
	}
	return s
}
