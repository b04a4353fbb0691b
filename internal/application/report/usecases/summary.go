package usecases

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/answer"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

const (
	DefaultWindowDays = 30
	MaxWindowDays     = 365
)

type SummaryQuery struct {
	UserID string
	Days   int
}

type SpecialtyAccuracyDTO struct {
	Specialty string  `json:"specialty"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

type SummaryDTO struct {
	Since             time.Time               `json:"since"`
	CompletedSessions int                     `json:"completed_sessions"`
	AverageScore      float64                 `json:"average_score"`
	Correct           int                     `json:"correct_answers"`
	Incorrect         int                     `json:"incorrect_answers"`
	Unanswered        int                     `json:"unanswered_questions"`
	OverallScore      float64                 `json:"overall_score"`
	TotalTimeSpent    int                     `json:"total_time_spent"`
	BySpecialty       []*SpecialtyAccuracyDTO `json:"by_specialty"`
}

// SummaryUseCase aggregates completed sessions and answer accuracy over a window of days.
type SummaryUseCase struct {
	sessionRepo quizsession.Repository
	statsRepo   answer.StatsRepository
	logger      logger.Interface
}

func NewSummaryUseCase(sessionRepo quizsession.Repository, statsRepo answer.StatsRepository, logger logger.Interface) *SummaryUseCase {
	return &SummaryUseCase{
		sessionRepo: sessionRepo,
		statsRepo:   statsRepo,
		logger:      logger,
	}
}

func (uc *SummaryUseCase) Execute(ctx context.Context, query SummaryQuery) (*SummaryDTO, error) {
	since, err := windowStart(query.Days)
	if err != nil {
		return nil, err
	}

	sessions, err := uc.sessionRepo.ListCompletedByUser(ctx, query.UserID, since)
	if err != nil {
		uc.logger.Errorw("failed to load completed sessions", "user_id", query.UserID, "error", err)
		return nil, errors.NewDownstreamError("failed to load sessions", err)
	}
	stats, err := uc.statsRepo.AccuracyBySpecialty(ctx, query.UserID, since)
	if err != nil {
		uc.logger.Errorw("failed to load specialty accuracy", "user_id", query.UserID, "error", err)
		return nil, errors.NewDownstreamError("failed to load accuracy", err)
	}

	out := &SummaryDTO{Since: since, CompletedSessions: len(sessions), BySpecialty: []*SpecialtyAccuracyDTO{}}
	var scoreSum float64
	for _, s := range sessions {
		scoreSum += s.Score()
		out.Correct += s.Metrics.Correct
		out.Incorrect += s.Metrics.Incorrect
		out.Unanswered += s.Metrics.Unanswered
		out.TotalTimeSpent += s.TotalTimeSpent
	}
	if len(sessions) > 0 {
		out.AverageScore = round1(scoreSum / float64(len(sessions)))
	}
	out.OverallScore = round1(quizsession.ComputeMetrics(0, out.Correct, out.Incorrect).Score())
	out.BySpecialty = uc.mergeSpecialties(stats)
	return out, nil
}

// mergeSpecialties folds labels differing only in case or spacing together.
func (uc *SummaryUseCase) mergeSpecialties(stats []answer.SpecialtyStat) []*SpecialtyAccuracyDTO {
	// a Caser keeps state between calls
	title := cases.Title(language.English)
	merged := make(map[string]*SpecialtyAccuracyDTO)
	for _, st := range stats {
		label := title.String(strings.Join(strings.Fields(st.Specialty), " "))
		if label == "" {
			label = "Unspecified"
		}
		row, ok := merged[label]
		if !ok {
			row = &SpecialtyAccuracyDTO{Specialty: label}
			merged[label] = row
		}
		row.Attempted += st.Attempted
		row.Correct += st.Correct
	}

	out := make([]*SpecialtyAccuracyDTO, 0, len(merged))
	for _, row := range merged {
		if row.Attempted > 0 {
			row.Accuracy = round1(float64(row.Correct) / float64(row.Attempted) * 100)
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Attempted != out[j].Attempted {
			return out[i].Attempted > out[j].Attempted
		}
		return out[i].Specialty < out[j].Specialty
	})
	return out
}

func windowStart(days int) (time.Time, error) {
	if days < 0 {
		return time.Time{}, errors.NewValidationError("days must not be negative")
	}
	if days == 0 {
		days = DefaultWindowDays
	}
	if days > MaxWindowDays {
		days = MaxWindowDays
	}
	return biztime.StartOfDayUTC(biztime.NowUTC().AddDate(0, 0, -(days - 1))), nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
