package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuizSessionModel is the persistence model for quiz sessions.
type QuizSessionModel struct {
	ID                   string `gorm:"primarykey;size:32"`
	UserID               string `gorm:"not null;size:64;index:idx_quiz_sessions_user_active,priority:1"`
	SessionName          string `gorm:"size:255"`
	SessionType          string `gorm:"not null;size:20"`
	SessionMode          string `gorm:"size:50"`
	Status               string `gorm:"not null;size:20;index"`
	IsActive             bool   `gorm:"not null;index:idx_quiz_sessions_user_active,priority:2"`
	IsPaused             bool   `gorm:"not null;default:false"`
	TrackProgress        bool   `gorm:"not null;default:false"`
	TotalQuestions       int    `gorm:"not null"`
	CurrentQuestionIndex int    `gorm:"not null;default:0"`
	TimeLimit            *int
	TimeRemaining        *int
	QuestionsOrder       datatypes.JSON
	Filters              datatypes.JSON
	ActiveTimeSeconds    int `gorm:"not null;default:0"`
	ActivityVersion      int `gorm:"not null;default:0"`
	TotalTimeSpent       int `gorm:"not null;default:0"`
	CorrectAnswers       int `gorm:"not null;default:0"`
	IncorrectAnswers     int `gorm:"not null;default:0"`
	UnansweredQuestions  int `gorm:"not null;default:0"`
	CreatedAt            time.Time
	LastActivityAt       *time.Time `gorm:"index"`
	MetricsCapturedAt    *time.Time
	CompletedAt          *time.Time `gorm:"index"`
	AbandonedAt          *time.Time
}

func (QuizSessionModel) TableName() string {
	return "quiz_sessions"
}

type SessionQuestionModel struct {
	ID            uint   `gorm:"primarykey"`
	SessionID     string `gorm:"not null;size:32;uniqueIndex:uk_session_question_order,priority:1;uniqueIndex:uk_session_question,priority:1"`
	QuestionID    uint   `gorm:"not null;uniqueIndex:uk_session_question,priority:2"`
	QuestionOrder int    `gorm:"not null;uniqueIndex:uk_session_question_order,priority:2"`
}

func (SessionQuestionModel) TableName() string {
	return "session_questions"
}
