package usecases

import (
	"context"
	"time"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

type ProgressQuery struct {
	UserID string
	Days   int
}

// DayPointDTO is one day of the progress series in the reporting timezone.
type DayPointDTO struct {
	Day               string  `json:"day"`
	Answered          int     `json:"answered"`
	Correct           int     `json:"correct"`
	Accuracy          float64 `json:"accuracy"`
	CompletedSessions int     `json:"completed_sessions"`
	AverageScore      float64 `json:"average_score"`
}

type ProgressDTO struct {
	Since  time.Time      `json:"since"`
	Points []*DayPointDTO `json:"points"`
}

// ProgressUseCase builds a gap-free daily series of answers and completed sessions.
type ProgressUseCase struct {
	sessionRepo quizsession.Repository
	statsRepo   answer.StatsRepository
	logger      logger.Interface
}

func NewProgressUseCase(sessionRepo quizsession.Repository, statsRepo answer.StatsRepository, logger logger.Interface) *ProgressUseCase {
	return &ProgressUseCase{sessionRepo: sessionRepo, statsRepo: statsRepo, logger: logger}
}

func (uc *ProgressUseCase) Execute(ctx context.Context, query ProgressQuery) (*ProgressDTO, error) {
	since, err := windowStart(query.Days)
	if err != nil {
		return nil, err
	}

	timeline, err := uc.statsRepo.AnswerTimeline(ctx, query.UserID, since)
	if err != nil {
		uc.logger.Errorw("failed to load answer timeline", "user_id", query.UserID, "error", err)
		return nil, errors.NewDownstreamError("failed to load answers", err)
	}
	sessions, err := uc.sessionRepo.ListCompletedByUser(ctx, query.UserID, since)
	if err != nil {
		uc.logger.Errorw("failed to load completed sessions", "user_id", query.UserID, "error", err)
		return nil, errors.NewDownstreamError("failed to load sessions", err)
	}

	points := make(map[string]*DayPointDTO)
	var order []string
	today := biztime.DayKey(biztime.NowUTC())
	for day := since; ; day = day.AddDate(0, 0, 1) {
		key := biztime.DayKey(day)
		points[key] = &DayPointDTO{Day: key}
		order = append(order, key)
		if key >= today {
			break
		}
	}

	for _, a := range timeline {
		p, ok := points[biztime.DayKey(a.AnsweredAt)]
		if !ok {
			continue
		}
		p.Answered++
		if a.IsCorrect {
			p.Correct++
		}
	}
	scoreSums := make(map[string]float64)
	for _, s := range sessions {
		if s.CompletedAt == nil {
			continue
		}
		key := biztime.DayKey(*s.CompletedAt)
		p, ok := points[key]
		if !ok {
			continue
		}
		p.CompletedSessions++
		scoreSums[key] += s.Score()
	}

	out := &ProgressDTO{Since: since, Points: make([]*DayPointDTO, 0, len(order))}
	for _, key := range order {
		p := points[key]
		if p.Answered > 0 {
			p.Accuracy = round1(float64(p.Correct) / float64(p.Answered) * 100)
		}
		if p.CompletedSessions > 0 {
			p.AverageScore = round1(scoreSums[key] / float64(p.CompletedSessions))
		}
		out.Points = append(out.Points, p)
	}
	return out, nil
}
