package usecases

import (
	"context"
	"strings"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/services/markdown"
)

const maxNoteLength = 20000

type SaveNoteCommand struct {
	UserID     string
	QuestionID uint
	Content    string
}

type NoteDTO struct {
	QuestionID uint   `json:"question_id"`
	Content    string `json:"content"`
}

// SaveNoteUseCase stores the caller's note on a question as sanitized HTML.
type SaveNoteUseCase struct {
	noteRepo     answer.NoteRepository
	questionRepo question.Repository
	sanitizer    markdown.MarkdownService
	logger       logger.Interface
}

func NewSaveNoteUseCase(noteRepo answer.NoteRepository, questionRepo question.Repository, sanitizer markdown.MarkdownService, logger logger.Interface) *SaveNoteUseCase {
	return &SaveNoteUseCase{noteRepo: noteRepo, questionRepo: questionRepo, sanitizer: sanitizer, logger: logger}
}

func (uc *SaveNoteUseCase) Execute(ctx context.Context, cmd SaveNoteCommand) (*NoteDTO, error) {
	if len(cmd.Content) > maxNoteLength {
		return nil, errors.NewValidationError("note is too long")
	}
	found, err := uc.questionRepo.GetByIDs(ctx, []uint{cmd.QuestionID})
	if err != nil {
		return nil, errors.NewDownstreamError("failed to load question", err)
	}
	if len(found) == 0 {
		return nil, errors.NewNotFoundError("question not found")
	}

	note := &answer.Note{
		UserID:     cmd.UserID,
		QuestionID: cmd.QuestionID,
		Content:    strings.TrimSpace(uc.sanitizer.Sanitize(cmd.Content)),
		UpdatedAt:  biztime.NowUTC(),
	}
	if err := uc.noteRepo.Upsert(ctx, note); err != nil {
		uc.logger.Errorw("failed to save note", "question_id", cmd.QuestionID, "error", err)
		return nil, errors.NewDownstreamError("failed to save note", err)
	}
	return &NoteDTO{QuestionID: note.QuestionID, Content: note.Content}, nil
}
