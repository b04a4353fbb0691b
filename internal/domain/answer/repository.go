package answer

import (
	"context"
	"time"
)

type AnswerRepository interface {
	// Upsert writes the answer keyed on (user_id, question_id, session_id); the latest submission wins.
	Upsert(ctx context.Context, a *UserAnswer) error
	ListBySession(ctx context.Context, userID, sessionID string) ([]*UserAnswer, error)
	CountBySession(ctx context.Context, userID, sessionID string) (correct, incorrect int, err error)
}

type ProgressRepository interface {
	// RecordAttempt increments times_attempted, and times_correct when correct, in one statement.
	RecordAttempt(ctx context.Context, userID string, questionID uint, correct bool, at time.Time) error
	SetFlag(ctx context.Context, userID string, questionID uint, flagged bool, at time.Time) error
	ListByQuestions(ctx context.Context, userID string, questionIDs []uint) ([]*Progress, error)
}

type NoteRepository interface {
	Upsert(ctx context.Context, n *Note) error
	ListByQuestions(ctx context.Context, userID string, questionIDs []uint) ([]*Note, error)
}

// SpecialtyStat is the answer accuracy of one specialty.
type SpecialtyStat struct {
	Specialty string
	Attempted int
	Correct   int
}

// AnswerPoint is a single answer placed in time.
type AnswerPoint struct {
	AnsweredAt time.Time
	IsCorrect  bool
}

type StatsRepository interface {
	AccuracyBySpecialty(ctx context.Context, userID string, since time.Time) ([]SpecialtyStat, error)
	AnswerTimeline(ctx context.Context, userID string, since time.Time) ([]AnswerPoint, error)
}
