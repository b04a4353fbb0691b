package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/dto"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/services/markdown"
)

type GetResultsQuery struct {
	SessionID string
	UserID    string
}

// GetResultsUseCase joins a session with its questions, answers, notes and
// flags in presentation order. It never writes.
type GetResultsUseCase struct {
	sessionRepo  quizsession.Repository
	questionRepo question.Repository
	answerRepo   answer.AnswerRepository
	progressRepo answer.ProgressRepository
	noteRepo     answer.NoteRepository
	markdown     markdown.MarkdownService
	logger       logger.Interface
}

func NewGetResultsUseCase(
	sessionRepo quizsession.Repository,
	questionRepo question.Repository,
	answerRepo answer.AnswerRepository,
	progressRepo answer.ProgressRepository,
	noteRepo answer.NoteRepository,
	markdownService markdown.MarkdownService,
	logger logger.Interface,
) *GetResultsUseCase {
	return &GetResultsUseCase{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		progressRepo: progressRepo,
		noteRepo:     noteRepo,
		markdown:     markdownService,
		logger:       logger,
	}
}

func (uc *GetResultsUseCase) Execute(ctx context.Context, query GetResultsQuery) (*dto.ResultsDTO, error) {
	s, err := loadOwnedSession(ctx, uc.sessionRepo, query.SessionID, query.UserID)
	if err != nil {
		return nil, err
	}

	rows, err := uc.sessionRepo.ListQuestions(ctx, s.ID)
	if err != nil {
		return nil, errors.NewDownstreamError("failed to load session questions", err)
	}
	ids := make([]uint, len(rows))
	for i, r := range rows {
		ids[i] = r.QuestionID
	}

	questions, err := uc.questionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewDownstreamError("failed to load questions", err)
	}
	answers, err := uc.answerRepo.ListBySession(ctx, s.UserID, s.ID)
	if err != nil {
		return nil, errors.NewDownstreamError("failed to load answers", err)
	}
	notes, err := uc.noteRepo.ListByQuestions(ctx, s.UserID, ids)
	if err != nil {
		return nil, errors.NewDownstreamError("failed to load notes", err)
	}
	progress, err := uc.progressRepo.ListByQuestions(ctx, s.UserID, ids)
	if err != nil {
		return nil, errors.NewDownstreamError("failed to load flags", err)
	}

	byQuestion := make(map[uint]*question.Question, len(questions))
	for _, q := range questions {
		byQuestion[q.ID] = q
	}
	byAnswer := make(map[uint]*answer.UserAnswer, len(answers))
	for _, a := range answers {
		byAnswer[a.QuestionID] = a
	}
	byNote := make(map[uint]string, len(notes))
	for _, n := range notes {
		byNote[n.QuestionID] = n.Content
	}
	flagged := make(map[uint]bool, len(progress))
	for _, p := range progress {
		flagged[p.QuestionID] = p.IsFlagged
	}

	items := make([]*dto.ResultItemDTO, 0, len(rows))
	for _, r := range rows {
		item := &dto.ResultItemDTO{
			Order:      r.Order,
			QuestionID: r.QuestionID,
			Note:       byNote[r.QuestionID],
			Flagged:    flagged[r.QuestionID],
		}
		if q, ok := byQuestion[r.QuestionID]; ok {
			item.Specialty = q.Specialty
			item.ExamType = q.ExamType
			item.Year = q.Year
			item.Difficulty = string(q.Difficulty)
			item.Stem = q.Stem
			item.Choices = q.Choices
			item.CorrectChoice = q.CorrectChoiceLetter
			html, err := uc.markdown.ToHTMLSanitized(q.Explanation)
			if err != nil {
				uc.logger.Warnw("failed to render explanation", "question_id", q.ID, "error", err)
			}
			item.ExplanationHTML = html
		}
		if a, ok := byAnswer[r.QuestionID]; ok {
			item.Answered = true
			item.SelectedChoice = a.SelectedChoiceLetter
			item.IsCorrect = a.IsCorrect
			item.TimeSpent = a.TimeSpent
		}
		items = append(items, item)
	}

	m := s.Metrics
	if s.Status != vo.StatusCompleted {
		correct, incorrect := answer.Tally(answers)
		m = quizsession.ComputeMetrics(s.TotalQuestions, correct, incorrect)
	}

	return &dto.ResultsDTO{
		Session: dto.ToQuizSessionDTO(s),
		Metrics: m,
		Score:   m.Score(),
		Items:   items,
	}, nil
}
