package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/dailychallenge/models"
	"github.com/cppla/dailychallenge/services"
	"github.com/cppla/dailychallenge/utils"
)

// StatsController provides aggregate counts across the service.
type StatsController struct {
	db    *gorm.DB
	clock services.Clock
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB, clock services.Clock) *StatsController {
	return &StatsController{db: db, clock: clock}
}

// GetStats returns user, challenge and submission counts.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount, challengeCount, submissionCount, todayCount int64
	db := s.db.WithContext(ctx.Request.Context())

	// Counts fall back to 0 instead of failing the whole endpoint.
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := db.Model(&models.Challenge{}).Count(&challengeCount).Error; err != nil {
		challengeCount = 0
	}
	if err := db.Model(&models.Submission{}).Count(&submissionCount).Error; err != nil {
		submissionCount = 0
	}

	start := services.Today(s.clock)
	end := start.AddDate(0, 0, 1)
	if err := db.Model(&models.Submission{}).
		Where("submitted_at >= ? AND submitted_at < ?", start, end).
		Count(&todayCount).Error; err != nil {
		todayCount = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":             userCount,
		"challenge_count":        challengeCount,
		"submission_count":       submissionCount,
		"today_submission_count": todayCount,
	})
}
