package quizsession

import (
	"context"
	"time"
)

// ActivityStamp is the optimistic-concurrency token for active time tracking.
type ActivityStamp struct {
	Version        int
	LastActivityAt *time.Time
}

type Repository interface {
	// Create writes the session and its question rows.
	Create(ctx context.Context, s *QuizSession, questions []SessionQuestion) error
	GetByID(ctx context.Context, sessionID string) (*QuizSession, error)
	// Update writes lifecycle state. It never writes activity columns or time_remaining.
	Update(ctx context.Context, s *QuizSession) error
	// UpdateWithTimer is Update plus time_remaining.
	UpdateWithTimer(ctx context.Context, s *QuizSession) error
	// UpdateProgress writes only the cursor, status and paused flag, and only
	// while the stored session still accepts answers.
	UpdateProgress(ctx context.Context, s *QuizSession) error
	// QuestionOrder returns the 1-based position of a question in a session.
	QuestionOrder(ctx context.Context, sessionID string, questionID uint) (int, error)
	ListQuestions(ctx context.Context, sessionID string) ([]SessionQuestion, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*QuizSession, int64, error)
	// ListIdle returns open sessions whose last activity predates idleBefore.
	// An empty userID scans all users.
	ListIdle(ctx context.Context, userID string, idleBefore time.Time, limit int) ([]*QuizSession, error)
	ListCompletedByUser(ctx context.Context, userID string, since time.Time) ([]*QuizSession, error)

	// CompareAndTouch credits addSeconds of active time and stamps now, only
	// while the row still carries the expected version. It reports whether the write applied.
	CompareAndTouch(ctx context.Context, sessionID, userID string, expected ActivityStamp, now time.Time, addSeconds int) (bool, error)
	// SyncTime raises active_time_seconds to at least elapsed and stores remaining when non-nil.
	SyncTime(ctx context.Context, sessionID, userID string, elapsed int, remaining *int, now time.Time) error
}
