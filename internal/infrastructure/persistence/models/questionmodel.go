package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionModel struct {
	ID                  uint           `gorm:"primarykey"`
	Specialty           string         `gorm:"not null;size:100;index"`
	ExamType            string         `gorm:"not null;size:100;index"`
	Year                int            `gorm:"index"`
	Difficulty          string         `gorm:"not null;size:20"`
	Stem                string         `gorm:"type:text;not null"`
	Choices             datatypes.JSON `gorm:"not null"`
	CorrectChoiceLetter string         `gorm:"not null;size:1"`
	Explanation         string         `gorm:"type:text"`
	CreatedAt           time.Time
}

func (QuestionModel) TableName() string {
	return "questions"
}
