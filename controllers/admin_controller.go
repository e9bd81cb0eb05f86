package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/dailychallenge/services"
	"github.com/cppla/dailychallenge/utils"
)

// AdminController schedules challenges and triggers rotation.
type AdminController struct {
	challenges *services.ChallengeService
	scheduler  *services.DailyScheduler
}

// NewAdminController creates an AdminController.
func NewAdminController(challenges *services.ChallengeService, scheduler *services.DailyScheduler) *AdminController {
	return &AdminController{challenges: challenges, scheduler: scheduler}
}

// CreateChallenge schedules a challenge on a free date.
func (a *AdminController) CreateChallenge(ctx *gin.Context) {
	var req struct {
		Title          string `json:"title" binding:"required,min=3,max=255"`
		Description    string `json:"description" binding:"required,min=10"`
		Category       string `json:"category" binding:"required"`
		Difficulty     string `json:"difficulty" binding:"required"`
		ExpectedOutput string `json:"expected_output"`
		ActiveDate     string `json:"active_date" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40044, "invalid request payload")
		return
	}
	day, err := time.Parse(dateLayout, req.ActiveDate)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40045, "active_date must be YYYY-MM-DD")
		return
	}

	ch, err := a.challenges.Create(ctx.Request.Context(), services.NewChallenge{
		Title:          utils.SanitizePlain(req.Title),
		Description:    utils.Sanitize(req.Description),
		Category:       req.Category,
		Difficulty:     req.Difficulty,
		ExpectedOutput: req.ExpectedOutput,
		ActiveDate:     day,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	points := 0
	if d, err := services.ParseDifficulty(ch.Difficulty); err == nil {
		points, _ = services.BasePoints(d)
	}
	utils.Created(ctx, challengeResponse(services.ChallengeView{Challenge: *ch, Points: points}))
}

// Rotate runs today's rotation immediately.
func (a *AdminController) Rotate(ctx *gin.Context) {
	ch, err := a.scheduler.RunOnce(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	if ch == nil {
		utils.Success(ctx, gin.H{"activated": nil})
		return
	}
	utils.Success(ctx, gin.H{"activated": challengeResponse(services.ChallengeView{Challenge: *ch})})
}
