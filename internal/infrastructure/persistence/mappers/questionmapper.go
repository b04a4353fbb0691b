package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/persistence/models"
)

type QuestionMapper interface {
	ToModel(entity *question.Question) (*models.QuestionModel, error)
	ToDomain(model *models.QuestionModel) (*question.Question, error)
}

type QuestionMapperImpl struct{}

func NewQuestionMapper() QuestionMapper {
	return &QuestionMapperImpl{}
}

func (m *QuestionMapperImpl) ToModel(entity *question.Question) (*models.QuestionModel, error) {
	choices, err := json.Marshal(entity.Choices)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal choices: %w", err)
	}
	return &models.QuestionModel{
		ID:                  entity.ID,
		Specialty:           entity.Specialty,
		ExamType:            entity.ExamType,
		Year:                entity.Year,
		Difficulty:          string(entity.Difficulty),
		Stem:                entity.Stem,
		Choices:             datatypes.JSON(choices),
		CorrectChoiceLetter: entity.CorrectChoiceLetter,
		Explanation:         entity.Explanation,
		CreatedAt:           entity.CreatedAt,
	}, nil
}

func (m *QuestionMapperImpl) ToDomain(model *models.QuestionModel) (*question.Question, error) {
	choices := make(map[string]string)
	if len(model.Choices) > 0 {
		if err := json.Unmarshal(model.Choices, &choices); err != nil {
			return nil, fmt.Errorf("failed to unmarshal choices of question %d: %w", model.ID, err)
		}
	}
	return &question.Question{
		ID:                  model.ID,
		Specialty:           model.Specialty,
		ExamType:            model.ExamType,
		Year:                model.Year,
		Difficulty:          question.Difficulty(model.Difficulty),
		Stem:                model.Stem,
		Choices:             choices,
		CorrectChoiceLetter: model.CorrectChoiceLetter,
		Explanation:         model.Explanation,
		CreatedAt:           model.CreatedAt,
	}, nil
}
