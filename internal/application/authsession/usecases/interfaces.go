package usecases

import (
	"context"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/authsession/dto"
)

type CreateAuthSessionExecutor interface {
	Execute(ctx context.Context, cmd CreateAuthSessionCommand) (*CreateAuthSessionResult, error)
}

type EndAuthSessionExecutor interface {
	Execute(ctx context.Context, cmd EndAuthSessionCommand) error
}

type EndAllAuthSessionsExecutor interface {
	Execute(ctx context.Context, cmd EndAllAuthSessionsCommand) (*EndAllAuthSessionsResult, error)
}

type ListAuthSessionsExecutor interface {
	Execute(ctx context.Context, query ListAuthSessionsQuery) ([]*dto.AuthSessionDTO, error)
}

type TouchAuthSessionExecutor interface {
	Execute(ctx context.Context, sessionID string) error
}

type CleanupAuthSessionsExecutor interface {
	Execute(ctx context.Context, cmd CleanupAuthSessionsCommand) (*CleanupAuthSessionsResult, error)
}
