// Package answer covers what a user records against a question: answers
// within a session, long-lived per-question progress and personal notes.
package answer

import (
	"fmt"
	"time"
)

type UserAnswer struct {
	UserID               string
	SessionID            string
	QuestionID           uint
	SelectedChoiceLetter string
	IsCorrect            bool
	TimeSpent            int
	AnsweredAt           time.Time
}

func NewUserAnswer(userID, sessionID string, questionID uint, choice string, isCorrect bool, timeSpent int, now time.Time) (*UserAnswer, error) {
	if userID == "" || sessionID == "" || questionID == 0 {
		return nil, fmt.Errorf("user, session and question are required")
	}
	if choice == "" {
		return nil, fmt.Errorf("selected choice is required")
	}
	if timeSpent < 0 {
		timeSpent = 0
	}
	return &UserAnswer{
		UserID:               userID,
		SessionID:            sessionID,
		QuestionID:           questionID,
		SelectedChoiceLetter: choice,
		IsCorrect:            isCorrect,
		TimeSpent:            timeSpent,
		AnsweredAt:           now,
	}, nil
}

// Tally counts correct and incorrect answers.
func Tally(answers []*UserAnswer) (correct, incorrect int) {
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		} else {
			incorrect++
		}
	}
	return correct, incorrect
}

// Progress is the per-user, per-question attempt history. Counters only grow.
type Progress struct {
	UserID         string
	QuestionID     uint
	TimesAttempted int
	TimesCorrect   int
	IsFlagged      bool
	LastAttempted  *time.Time
	UpdatedAt      time.Time
}

// Accuracy returns times_correct/times_attempted as a percentage.
func (p *Progress) Accuracy() float64 {
	if p.TimesAttempted == 0 {
		return 0
	}
	return float64(p.TimesCorrect) / float64(p.TimesAttempted) * 100
}

type Note struct {
	UserID     string
	QuestionID uint
	Content    string
	UpdatedAt  time.Time
}
