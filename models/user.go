package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a player. Passwords are stored as bcrypt hashes only.
// Streak and points columns are written exclusively by the submission workflow.
type User struct {
	ID                uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	Username          string          `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email             string          `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash      string          `gorm:"size:255;not null" json:"-"`
	CurrentStreak     int             `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak     int             `gorm:"not null;default:0" json:"longest_streak"`
	TotalPoints       int             `gorm:"not null;default:0;index" json:"total_points"`
	LastCompletedDate *datatypes.Date `json:"last_completed_date"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BeforeCreate assigns an id and timestamps when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// LastCompleted returns the last completion date as a time, or nil.
func (u *User) LastCompleted() *time.Time {
	if u.LastCompletedDate == nil {
		return nil
	}
	t := time.Time(*u.LastCompletedDate)
	return &t
}
