package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
)

func seedQuestions(t *testing.T, repo *QuestionRepository) {
	t.Helper()
	bank := []*question.Question{
		{ID: 1, Specialty: "cardiology", ExamType: "step1", Year: 2023, Difficulty: question.DifficultyEasy},
		{ID: 2, Specialty: "cardiology", ExamType: "step2", Year: 2024, Difficulty: question.DifficultyHard},
		{ID: 3, Specialty: "neurology", ExamType: "step1", Year: 2024, Difficulty: question.DifficultyMedium},
	}
	for _, q := range bank {
		q.Stem = "stem"
		q.Choices = map[string]string{"A": "a", "B": "b"}
		q.CorrectChoiceLetter = "A"
		require.NoError(t, repo.Upsert(context.Background(), q))
	}
}

func TestQuestionRepository_Filters(t *testing.T) {
	repo := NewQuestionRepository(setupTestDB(t))
	ctx := context.Background()
	seedQuestions(t, repo)

	list, total, err := repo.List(ctx, question.Filter{Specialties: []string{"cardiology"}}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
	assert.Equal(t, map[string]string{"A": "a", "B": "b"}, list[0].Choices)

	ids, err := repo.ListIDs(ctx, question.Filter{Years: []int{2024}, ExamTypes: []string{"step1"}}, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, ids)

	ids, err = repo.ListIDs(ctx, question.Filter{}, 2)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, total, err = repo.List(ctx, question.Filter{Difficulties: []string{"hard", "medium"}}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestQuestionRepository_UpsertReplaces(t *testing.T) {
	repo := NewQuestionRepository(setupTestDB(t))
	ctx := context.Background()
	seedQuestions(t, repo)

	require.NoError(t, repo.Upsert(ctx, &question.Question{
		ID: 1, Specialty: "cardiology", ExamType: "step1", Year: 2023, Difficulty: question.DifficultyEasy,
		Stem: "rewritten", Choices: map[string]string{"A": "x", "B": "y"}, CorrectChoiceLetter: "B",
	}))

	got, err := repo.GetByIDs(ctx, []uint{1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rewritten", got[0].Stem)
	assert.Equal(t, "B", got[0].CorrectChoiceLetter)
}

func TestUserAnswerRepository_Stats(t *testing.T) {
	gdb := setupTestDB(t)
	seedQuestions(t, NewQuestionRepository(gdb))
	repo := NewUserAnswerRepository(gdb)
	ctx := context.Background()
	day := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, a := range []*answer.UserAnswer{
		{UserID: "u", SessionID: "qs_1", QuestionID: 1, SelectedChoiceLetter: "A", IsCorrect: true, AnsweredAt: day},
		{UserID: "u", SessionID: "qs_1", QuestionID: 2, SelectedChoiceLetter: "B", IsCorrect: false, AnsweredAt: day},
		{UserID: "u", SessionID: "qs_1", QuestionID: 3, SelectedChoiceLetter: "A", IsCorrect: true, AnsweredAt: day.Add(24 * time.Hour)},
		{UserID: "u", SessionID: "qs_0", QuestionID: 3, SelectedChoiceLetter: "A", IsCorrect: true, AnsweredAt: day.Add(-30 * 24 * time.Hour)},
	} {
		require.NoError(t, repo.Upsert(ctx, a))
	}

	stats, err := repo.AccuracyBySpecialty(ctx, "u", day.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, answer.SpecialtyStat{Specialty: "cardiology", Attempted: 2, Correct: 1}, stats[0])
	assert.Equal(t, answer.SpecialtyStat{Specialty: "neurology", Attempted: 1, Correct: 1}, stats[1])

	points, err := repo.AnswerTimeline(ctx, "u", day.Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, points, 3)
}
