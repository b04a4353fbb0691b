package usecases

import (
	"context"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
)

// mockSessionRepository embeds the interface; only the report reads are implemented.
type mockSessionRepository struct {
	quizsession.Repository
	completed []*quizsession.QuizSession
	err       error
}

func (m *mockSessionRepository) ListCompletedByUser(ctx context.Context, userID string, since time.Time) ([]*quizsession.QuizSession, error) {
	return m.completed, m.err
}

type mockStatsRepository struct {
	specialties []answer.SpecialtyStat
	timeline    []answer.AnswerPoint
}

func (m *mockStatsRepository) AccuracyBySpecialty(ctx context.Context, userID string, since time.Time) ([]answer.SpecialtyStat, error) {
	return m.specialties, nil
}

func (m *mockStatsRepository) AnswerTimeline(ctx context.Context, userID string, since time.Time) ([]answer.AnswerPoint, error) {
	return m.timeline, nil
}
