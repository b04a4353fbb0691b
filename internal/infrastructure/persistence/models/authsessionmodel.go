package models

import "time"

// AuthSessionModel is the persistence model for login sessions.
type AuthSessionModel struct {
	ID           string     `gorm:"primarykey;size:36"`
	UserID       string     `gorm:"not null;size:64;index:idx_auth_sessions_user_active,priority:1"`
	IsActive     bool       `gorm:"not null;index:idx_auth_sessions_user_active,priority:2"`
	UserAgent    string     `gorm:"size:512"`
	IPAddress    string     `gorm:"size:45"`
	CreatedAt    time.Time  `gorm:"not null;index"`
	LastActivity time.Time  `gorm:"not null"`
	EndedAt      *time.Time `gorm:"index"`
}

// TableName specifies the table name for GORM
func (AuthSessionModel) TableName() string {
	return "auth_sessions"
}
