package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession"
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/models"
)

// QuizSessionMapper converts between quiz sessions and their persistence model.
type QuizSessionMapper interface {
	ToModel(entity *quizsession.QuizSession) (*models.QuizSessionModel, error)
	ToDomain(model *models.QuizSessionModel) (*quizsession.QuizSession, error)
}

type QuizSessionMapperImpl struct{}

func NewQuizSessionMapper() QuizSessionMapper {
	return &QuizSessionMapperImpl{}
}

func (m *QuizSessionMapperImpl) ToModel(entity *quizsession.QuizSession) (*models.QuizSessionModel, error) {
	if entity == nil {
		return nil, nil
	}

	order, err := json.Marshal(entity.QuestionsOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions order: %w", err)
	}
	filters, err := json.Marshal(entity.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filters: %w", err)
	}

	return &models.QuizSessionModel{
		ID:                   entity.ID,
		UserID:               entity.UserID,
		SessionName:          entity.Name,
		SessionType:          entity.Type.String(),
		SessionMode:          entity.Mode,
		Status:               entity.Status.String(),
		IsActive:             entity.IsActive,
		IsPaused:             entity.IsPaused,
		TrackProgress:        entity.TrackProgress,
		TotalQuestions:       entity.TotalQuestions,
		CurrentQuestionIndex: entity.CurrentQuestionIndex,
		TimeLimit:            entity.TimeLimit,
		TimeRemaining:        entity.TimeRemaining,
		QuestionsOrder:       datatypes.JSON(order),
		Filters:              datatypes.JSON(filters),
		ActiveTimeSeconds:    entity.ActiveTimeSeconds,
		ActivityVersion:      entity.ActivityVersion,
		TotalTimeSpent:       entity.TotalTimeSpent,
		CorrectAnswers:       entity.Metrics.Correct,
		IncorrectAnswers:     entity.Metrics.Incorrect,
		UnansweredQuestions:  entity.Metrics.Unanswered,
		CreatedAt:            entity.CreatedAt,
		LastActivityAt:       entity.LastActivityAt,
		MetricsCapturedAt:    entity.MetricsCapturedAt,
		CompletedAt:          entity.CompletedAt,
		AbandonedAt:          entity.AbandonedAt,
	}, nil
}

func (m *QuizSessionMapperImpl) ToDomain(model *models.QuizSessionModel) (*quizsession.QuizSession, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewSessionStatus(model.Status)
	if err != nil {
		return nil, err
	}
	sessionType, err := vo.NewSessionType(model.SessionType)
	if err != nil {
		return nil, err
	}

	var order []uint
	if len(model.QuestionsOrder) > 0 {
		if err := json.Unmarshal(model.QuestionsOrder, &order); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questions order: %w", err)
		}
	}
	var filters question.Filter
	if len(model.Filters) > 0 {
		if err := json.Unmarshal(model.Filters, &filters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal filters: %w", err)
		}
	}

	return &quizsession.QuizSession{
		ID:                   model.ID,
		UserID:               model.UserID,
		Name:                 model.SessionName,
		Type:                 sessionType,
		Mode:                 model.SessionMode,
		Status:               status,
		IsActive:             model.IsActive,
		IsPaused:             model.IsPaused,
		TrackProgress:        model.TrackProgress,
		TotalQuestions:       model.TotalQuestions,
		CurrentQuestionIndex: model.CurrentQuestionIndex,
		TimeLimit:            model.TimeLimit,
		TimeRemaining:        model.TimeRemaining,
		QuestionsOrder:       order,
		Filters:              filters,
		ActiveTimeSeconds:    model.ActiveTimeSeconds,
		ActivityVersion:      model.ActivityVersion,
		TotalTimeSpent:       model.TotalTimeSpent,
		Metrics: quizsession.Metrics{
			Correct:    model.CorrectAnswers,
			Incorrect:  model.IncorrectAnswers,
			Unanswered: model.UnansweredQuestions,
		},
		CreatedAt:         model.CreatedAt,
		LastActivityAt:    model.LastActivityAt,
		MetricsCapturedAt: model.MetricsCapturedAt,
		CompletedAt:       model.CompletedAt,
		AbandonedAt:       model.AbandonedAt,
	}, nil
}
