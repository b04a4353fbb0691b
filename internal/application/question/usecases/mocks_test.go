package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
)

type mockQuestionRepository struct {
	ListFunc     func(ctx context.Context, filter question.Filter, page, pageSize int) ([]*question.Question, int64, error)
	ListIDsFunc  func(ctx context.Context, filter question.Filter, limit int) ([]uint, error)
	GetByIDsFunc func(ctx context.Context, ids []uint) ([]*question.Question, error)
	UpsertFunc   func(ctx context.Context, q *question.Question) error
}

func (m *mockQuestionRepository) List(ctx context.Context, filter question.Filter, page, pageSize int) ([]*question.Question, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockQuestionRepository) ListIDs(ctx context.Context, filter question.Filter, limit int) ([]uint, error) {
	if m.ListIDsFunc != nil {
		return m.ListIDsFunc(ctx, filter, limit)
	}
	return nil, nil
}

func (m *mockQuestionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*question.Question, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockQuestionRepository) Upsert(ctx context.Context, q *question.Question) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, q)
	}
	return nil
}

type mockNoteRepository struct {
	UpsertFunc func(ctx context.Context, n *answer.Note) error
}

func (m *mockNoteRepository) Upsert(ctx context.Context, n *answer.Note) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, n)
	}
	return nil
}

func (m *mockNoteRepository) ListByQuestions(ctx context.Context, userID string, questionIDs []uint) ([]*answer.Note, error) {
	return nil, nil
}
