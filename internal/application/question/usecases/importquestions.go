package usecases

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

// questionBank is the YAML layout of a seed file.
type questionBank struct {
	Questions []struct {
		ID          uint              `yaml:"id"`
		Specialty   string            `yaml:"specialty"`
		ExamType    string            `yaml:"exam_type"`
		Year        int               `yaml:"year"`
		Difficulty  string            `yaml:"difficulty"`
		Stem        string            `yaml:"stem"`
		Choices     map[string]string `yaml:"choices"`
		Correct     string            `yaml:"correct"`
		Explanation string            `yaml:"explanation"`
	} `yaml:"questions"`
}

type ImportQuestionsResult struct {
	Imported int
	Skipped  []string
}

// ImportQuestionsUseCase loads a YAML question bank. Invalid entries are
// skipped and reported; the rest are upserted by ID.
type ImportQuestionsUseCase struct {
	repo   question.Repository
	logger logger.Interface
}

func NewImportQuestionsUseCase(repo question.Repository, logger logger.Interface) *ImportQuestionsUseCase {
	return &ImportQuestionsUseCase{repo: repo, logger: logger}
}

func (uc *ImportQuestionsUseCase) Execute(ctx context.Context, r io.Reader) (*ImportQuestionsResult, error) {
	var bank questionBank
	if err := yaml.NewDecoder(r).Decode(&bank); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	result := &ImportQuestionsResult{}
	for i, raw := range bank.Questions {
		q := &question.Question{
			ID:                  raw.ID,
			Specialty:           strings.TrimSpace(raw.Specialty),
			ExamType:            strings.TrimSpace(raw.ExamType),
			Year:                raw.Year,
			Difficulty:          question.Difficulty(strings.ToLower(raw.Difficulty)),
			Stem:                raw.Stem,
			Choices:             raw.Choices,
			CorrectChoiceLetter: strings.ToUpper(raw.Correct),
			Explanation:         raw.Explanation,
		}
		if q.ID == 0 {
			result.Skipped = append(result.Skipped, fmt.Sprintf("#%d: id is required", i+1))
			continue
		}
		if err := q.Validate(); err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("#%d (id %d): %v", i+1, q.ID, err))
			continue
		}
		if err := uc.repo.Upsert(ctx, q); err != nil {
			return result, fmt.Errorf("failed to save question %d: %w", q.ID, err)
		}
		result.Imported++
	}

	uc.logger.Infow("question bank imported",
		"imported", result.Imported,
		"skipped", len(result.Skipped),
	)
	return result, nil
}
