package usecases

import (
	"context"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

type ListQuestionsQuery struct {
	Filter   question.Filter
	Page     int
	PageSize int
}

// QuestionSummaryDTO omits the answer key so a catalogue listing cannot leak it.
type QuestionSummaryDTO struct {
	ID         uint      `json:"id"`
	Specialty  string    `json:"specialty"`
	ExamType   string    `json:"exam_type"`
	Year       int       `json:"year"`
	Difficulty string    `json:"difficulty"`
	Stem       string    `json:"stem"`
	Choices    []string  `json:"choice_letters"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListQuestionsResult struct {
	Questions []*QuestionSummaryDTO `json:"questions"`
	Total     int64                 `json:"total"`
	Page      int                   `json:"page"`
	PageSize  int                   `json:"page_size"`
}

type ListQuestionsUseCase struct {
	repo   question.Repository
	logger logger.Interface
}

func NewListQuestionsUseCase(repo question.Repository, logger logger.Interface) *ListQuestionsUseCase {
	return &ListQuestionsUseCase{repo: repo, logger: logger}
}

func (uc *ListQuestionsUseCase) Execute(ctx context.Context, query ListQuestionsQuery) (*ListQuestionsResult, error) {
	for _, d := range query.Filter.Difficulties {
		if !question.Difficulty(d).IsValid() {
			return nil, errors.NewValidationError("invalid difficulty: " + d)
		}
	}
	p := utils.ValidatePagination(query.Page, query.PageSize)

	list, total, err := uc.repo.List(ctx, query.Filter, p.Page, p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list questions", "error", err)
		return nil, errors.NewDownstreamError("failed to list questions", err)
	}

	out := make([]*QuestionSummaryDTO, 0, len(list))
	for _, q := range list {
		out = append(out, &QuestionSummaryDTO{
			ID:         q.ID,
			Specialty:  q.Specialty,
			ExamType:   q.ExamType,
			Year:       q.Year,
			Difficulty: string(q.Difficulty),
			Stem:       q.Stem,
			Choices:    q.ChoiceLetters(),
			CreatedAt:  q.CreatedAt,
		})
	}
	return &ListQuestionsResult{Questions: out, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}
