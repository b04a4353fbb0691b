package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

const (
	DefaultActivityGap = 5 * time.Minute
	maxActivityRetries = 3
)

var errActivityContention = errors.New("active time update lost to concurrent writers")

// ActivityTracker credits active time to a session with a compare-and-set on
// its activity version. Gaps longer than maxGap are not credited.
type ActivityTracker struct {
	repo   quizsession.Repository
	maxGap time.Duration
	logger logger.Interface
}

func NewActivityTracker(repo quizsession.Repository, maxGap time.Duration, logger logger.Interface) *ActivityTracker {
	if maxGap <= 0 {
		maxGap = DefaultActivityGap
	}
	return &ActivityTracker{repo: repo, maxGap: maxGap, logger: logger}
}

// Record stamps activity at now and updates s in place on success.
func (t *ActivityTracker) Record(ctx context.Context, s *quizsession.QuizSession, now time.Time) error {
	return t.touch(ctx, s, now, true)
}

// Restart stamps now without crediting the gap since the last stamp. It is
// used when a session leaves the paused or created state.
func (t *ActivityTracker) Restart(ctx context.Context, s *quizsession.QuizSession, now time.Time) error {
	return t.touch(ctx, s, now, false)
}

func (t *ActivityTracker) touch(ctx context.Context, s *quizsession.QuizSession, now time.Time, credit bool) error {
	for attempt := 0; attempt < maxActivityRetries; attempt++ {
		delta := 0
		if credit {
			delta = quizsession.ActivityDelta(s.LastActivityAt, now, t.maxGap)
		}
		expected := quizsession.ActivityStamp{Version: s.ActivityVersion, LastActivityAt: s.LastActivityAt}

		applied, err := t.repo.CompareAndTouch(ctx, s.ID, s.UserID, expected, now, delta)
		if err != nil {
			return err
		}
		if applied {
			s.ActivityVersion++
			s.ActiveTimeSeconds += delta
			stamp := now
			s.LastActivityAt = &stamp
			return nil
		}

		t.logger.Debugw("activity stamp conflict, reloading",
			"session_id", s.ID,
			"attempt", attempt+1,
		)
		fresh, err := t.repo.GetByID(ctx, s.ID)
		if err != nil {
			return fmt.Errorf("failed to reload session after conflict: %w", err)
		}
		s.ActivityVersion = fresh.ActivityVersion
		s.ActiveTimeSeconds = fresh.ActiveTimeSeconds
		s.LastActivityAt = fresh.LastActivityAt
	}
	return errActivityContention
}
