package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	apperrors "github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/services/markdown"
)

func TestListQuestions_HidesAnswerKey(t *testing.T) {
	repo := &mockQuestionRepository{
		ListFunc: func(ctx context.Context, filter question.Filter, page, pageSize int) ([]*question.Question, int64, error) {
			assert.Equal(t, 1, page)
			assert.Equal(t, 20, pageSize)
			return []*question.Question{{
				ID: 7, Specialty: "cardiology", Difficulty: question.DifficultyHard,
				Choices: map[string]string{"B": "b", "A": "a"}, CorrectChoiceLetter: "B",
			}}, 1, nil
		},
	}

	res, err := NewListQuestionsUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), ListQuestionsQuery{})
	require.NoError(t, err)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, []string{"A", "B"}, res.Questions[0].Choices)
	assert.Equal(t, int64(1), res.Total)

	_, err = NewListQuestionsUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), ListQuestionsQuery{
		Filter: question.Filter{Difficulties: []string{"impossible"}},
	})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestSaveNote_Sanitizes(t *testing.T) {
	var saved *answer.Note
	notes := &mockNoteRepository{UpsertFunc: func(ctx context.Context, n *answer.Note) error {
		saved = n
		return nil
	}}
	questions := &mockQuestionRepository{GetByIDsFunc: func(ctx context.Context, ids []uint) ([]*question.Question, error) {
		return []*question.Question{{ID: ids[0]}}, nil
	}}

	res, err := NewSaveNoteUseCase(notes, questions, markdown.NewMarkdownService(), logger.NewNopLogger()).Execute(context.Background(), SaveNoteCommand{
		UserID: "u1", QuestionID: 3, Content: `<b>remember</b><script>alert(1)</script>`,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "<b>remember</b>", res.Content)
	assert.NotContains(t, saved.Content, "script")
}

func TestSaveNote_UnknownQuestion(t *testing.T) {
	_, err := NewSaveNoteUseCase(&mockNoteRepository{}, &mockQuestionRepository{}, markdown.NewMarkdownService(), logger.NewNopLogger()).
		Execute(context.Background(), SaveNoteCommand{UserID: "u1", QuestionID: 3, Content: "x"})
	assert.True(t, apperrors.IsNotFoundError(err))
}

const bankYAML = `
questions:
  - id: 1
    specialty: cardiology
    exam_type: step1
    year: 2024
    difficulty: Medium
    stem: "Which vessel?"
    choices: {A: aorta, B: vena cava}
    correct: a
    explanation: "The **aorta**."
  - id: 2
    specialty: cardiology
    exam_type: step1
    difficulty: medium
    stem: "Missing choices"
    choices: {A: only}
    correct: A
  - specialty: neurology
    exam_type: step2
    difficulty: easy
    stem: "No id"
    choices: {A: a, B: b}
    correct: B
`

func TestImportQuestions(t *testing.T) {
	var saved []*question.Question
	repo := &mockQuestionRepository{UpsertFunc: func(ctx context.Context, q *question.Question) error {
		saved = append(saved, q)
		return nil
	}}

	res, err := NewImportQuestionsUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), strings.NewReader(bankYAML))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Len(t, res.Skipped, 2)
	require.Len(t, saved, 1)
	assert.Equal(t, question.DifficultyMedium, saved[0].Difficulty)
	assert.Equal(t, "A", saved[0].CorrectChoiceLetter)
}

func TestImportQuestions_RejectsMalformedYAML(t *testing.T) {
	_, err := NewImportQuestionsUseCase(&mockQuestionRepository{}, logger.NewNopLogger()).Execute(context.Background(), strings.NewReader("questions: [oops"))
	assert.Error(t, err)
}
