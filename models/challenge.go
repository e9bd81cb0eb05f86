package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Challenge categories.
const (
	CategoryLogic  = "logic"
	CategoryCoding = "coding"
	CategoryLife   = "life"
)

// Challenge is the puzzle or task published for exactly one calendar day.
type Challenge struct {
	ID             uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	Category       string         `gorm:"size:16;not null" json:"category"`
	Difficulty     string         `gorm:"size:16;not null" json:"difficulty"`
	ExpectedOutput string         `gorm:"type:text" json:"expected_output,omitempty"`
	ActiveDate     datatypes.Date `gorm:"uniqueIndex;not null" json:"active_date"`
	IsActive       bool           `gorm:"not null;default:false;index" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
}

// BeforeCreate assigns an id and creation time when not provided.
func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return nil
}

// Day returns the active date as a time value.
func (c *Challenge) Day() time.Time {
	return time.Time(c.ActiveDate)
}

// ValidCategory reports whether s is a known challenge category.
func ValidCategory(s string) bool {
	switch s {
	case CategoryLogic, CategoryCoding, CategoryLife:
		return true
	}
	return false
}
