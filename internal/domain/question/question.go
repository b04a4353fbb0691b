// Package question is the read model of the question bank used to configure tests.
package question

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

type Question struct {
	ID                  uint
	Specialty           string
	ExamType            string
	Year                int
	Difficulty          Difficulty
	Stem                string
	Choices             map[string]string
	CorrectChoiceLetter string
	Explanation         string
	CreatedAt           time.Time
}

// Validate checks a question before it is written to the bank.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Stem) == "" {
		return fmt.Errorf("question stem is required")
	}
	if q.Specialty == "" || q.ExamType == "" {
		return fmt.Errorf("specialty and exam type are required")
	}
	if !q.Difficulty.IsValid() {
		return fmt.Errorf("invalid difficulty: %s", q.Difficulty)
	}
	if len(q.Choices) < 2 {
		return fmt.Errorf("at least two choices are required")
	}
	if _, ok := q.Choices[q.CorrectChoiceLetter]; !ok {
		return fmt.Errorf("correct choice %q is not one of the choices", q.CorrectChoiceLetter)
	}
	return nil
}

// ChoiceLetters returns the choice letters in order.
func (q *Question) ChoiceLetters() []string {
	letters := make([]string, 0, len(q.Choices))
	for l := range q.Choices {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	return letters
}

// Filter narrows the bank when configuring a test. Empty slices match everything.
type Filter struct {
	Specialties  []string `json:"specialties,omitempty"`
	ExamTypes    []string `json:"exam_types,omitempty"`
	Years        []int    `json:"years,omitempty"`
	Difficulties []string `json:"difficulties,omitempty"`
}

type Repository interface {
	List(ctx context.Context, filter Filter, page, pageSize int) ([]*Question, int64, error)
	ListIDs(ctx context.Context, filter Filter, limit int) ([]uint, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Question, error)
	// Upsert inserts or replaces a question keyed by its ID.
	Upsert(ctx context.Context, q *Question) error
}
