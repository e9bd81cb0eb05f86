package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission types.
const (
	SubmissionText     = "text"
	SubmissionCode     = "code"
	SubmissionCheckbox = "checkbox"
)

// Submission is a user's single, immutable answer to a challenge.
// (user_id, challenge_id) is unique at the store level.
type Submission struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:char(36);not null;index;uniqueIndex:idx_user_challenge_submission" json:"user_id"`
	ChallengeID    uuid.UUID `gorm:"type:char(36);not null;index;uniqueIndex:idx_user_challenge_submission" json:"challenge_id"`
	Content        string    `gorm:"type:text" json:"content"`
	SubmissionType string    `gorm:"size:20;not null;default:text" json:"submission_type"`
	Completed      bool      `gorm:"not null" json:"completed"`
	PointsAwarded  int       `gorm:"not null;default:0" json:"points_awarded"`
	SubmittedAt    time.Time `gorm:"not null;index" json:"submitted_at"`
}

// BeforeCreate assigns an id when not provided.
func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ValidSubmissionType reports whether s is a known submission type.
func ValidSubmissionType(s string) bool {
	switch s {
	case SubmissionText, SubmissionCode, SubmissionCheckbox:
		return true
	}
	return false
}
