package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PasswordHash is NULL for accounts
// created through a federated login.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(320);uniqueIndex:idx_users_email;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Picture      string    `gorm:"type:text;not null;default:''"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Sessions []SessionModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
