package question

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/question/usecases"
)

type listQuestionsUseCase interface {
	Execute(ctx context.Context, query usecases.ListQuestionsQuery) (*usecases.ListQuestionsResult, error)
}

type saveNoteUseCase interface {
	Execute(ctx context.Context, cmd usecases.SaveNoteCommand) (*usecases.NoteDTO, error)
}
