package models

import "time"

type UserProfileModel struct {
	UserID          string  `gorm:"primarykey;size:64"`
	Email           string  `gorm:"size:255"`
	DisplayName     string  `gorm:"size:255"`
	IsAdmin         bool    `gorm:"not null;default:false"`
	ActiveSessionID *string `gorm:"size:32;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (UserProfileModel) TableName() string {
	return "user_profiles"
}
