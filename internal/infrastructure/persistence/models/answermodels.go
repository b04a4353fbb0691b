package models

import "time"

type UserAnswerModel struct {
	ID                   uint      `gorm:"primarykey"`
	UserID               string    `gorm:"not null;size:64;uniqueIndex:uk_user_answer,priority:1"`
	QuestionID           uint      `gorm:"not null;uniqueIndex:uk_user_answer,priority:2"`
	SessionID            string    `gorm:"not null;size:32;uniqueIndex:uk_user_answer,priority:3;index"`
	SelectedChoiceLetter string    `gorm:"not null;size:1"`
	IsCorrect            bool      `gorm:"not null"`
	TimeSpent            int       `gorm:"not null;default:0"`
	AnsweredAt           time.Time `gorm:"not null;index"`
}

func (UserAnswerModel) TableName() string {
	return "user_answers"
}

type UserQuestionProgressModel struct {
	ID             uint   `gorm:"primarykey"`
	UserID         string `gorm:"not null;size:64;uniqueIndex:uk_user_question_progress,priority:1"`
	QuestionID     uint   `gorm:"not null;uniqueIndex:uk_user_question_progress,priority:2"`
	TimesAttempted int    `gorm:"not null;default:0"`
	TimesCorrect   int    `gorm:"not null;default:0"`
	IsFlagged      bool   `gorm:"not null;default:false"`
	LastAttempted  *time.Time
	UpdatedAt      time.Time
}

func (UserQuestionProgressModel) TableName() string {
	return "user_question_progress"
}

type UserNoteModel struct {
	ID         uint   `gorm:"primarykey"`
	UserID     string `gorm:"not null;size:64;uniqueIndex:uk_user_note,priority:1"`
	QuestionID uint   `gorm:"not null;uniqueIndex:uk_user_note,priority:2"`
	Content    string `gorm:"type:text"`
	UpdatedAt  time.Time
}

func (UserNoteModel) TableName() string {
	return "user_notes"
}
