package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table. Rows are never deleted.
type SessionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_sessions_user_valid,priority:1"`
	UserAgent string    `gorm:"type:text;not null;default:''"`
	Valid     bool      `gorm:"not null;default:true;index:idx_sessions_user_valid,priority:2"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
