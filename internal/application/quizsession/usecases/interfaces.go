package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/dto"
)

type CreateQuizSessionExecutor interface {
	Execute(ctx context.Context, cmd CreateQuizSessionCommand) (*CreateQuizSessionResult, error)
}

type ActivateSessionExecutor interface {
	Execute(ctx context.Context, cmd ActivateSessionCommand) (*ActivateSessionResult, error)
}

type RecordAnswerExecutor interface {
	Execute(ctx context.Context, cmd RecordAnswerCommand) (*RecordAnswerResult, error)
}

type FlagQuestionExecutor interface {
	Execute(ctx context.Context, cmd FlagQuestionCommand) (*FlagQuestionResult, error)
}

type PauseSessionExecutor interface {
	Execute(ctx context.Context, cmd PauseSessionCommand) (*dto.QuizSessionDTO, error)
}

type EndSessionExecutor interface {
	Execute(ctx context.Context, cmd EndSessionCommand) (*EndSessionResult, error)
}

type GetActiveTimeExecutor interface {
	Execute(ctx context.Context, query GetActiveTimeQuery) (*dto.ActiveTimeDTO, error)
}

type SyncTimeExecutor interface {
	Execute(ctx context.Context, cmd SyncTimeCommand) (*SyncTimeResult, error)
}

type GetResultsExecutor interface {
	Execute(ctx context.Context, query GetResultsQuery) (*dto.ResultsDTO, error)
}

type ListHistoryExecutor interface {
	Execute(ctx context.Context, query ListHistoryQuery) (*ListHistoryResult, error)
}

type GetActiveQuizSessionExecutor interface {
	Execute(ctx context.Context, userID string) (*dto.QuizSessionDTO, error)
}

type SweepAllExecutor interface {
	Execute(ctx context.Context) (*SweepAllResult, error)
}
