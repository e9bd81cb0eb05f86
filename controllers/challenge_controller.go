package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cppla/dailychallenge/middleware"
	"github.com/cppla/dailychallenge/models"
	"github.com/cppla/dailychallenge/services"
	"github.com/cppla/dailychallenge/utils"
)

const (
	maxSubmissionContent = 10000
	defaultHistoryPage   = 10
	maxHistoryPage       = 50
)

// ChallengeController serves today's challenge, history and submissions.
type ChallengeController struct {
	challenges  *services.ChallengeService
	submissions *services.SubmissionService
	clock       services.Clock
}

// NewChallengeController creates a ChallengeController.
func NewChallengeController(challenges *services.ChallengeService, submissions *services.SubmissionService, clock services.Clock) *ChallengeController {
	return &ChallengeController{challenges: challenges, submissions: submissions, clock: clock}
}

// Today returns the active challenge for the current UTC date.
func (c *ChallengeController) Today(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "authentication required")
		return
	}
	view, err := c.challenges.Today(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if view == nil {
		utils.Error(ctx, http.StatusNotFound, 40431, "no challenge available for today")
		return
	}
	utils.Success(ctx, challengeResponse(*view))
}

// History pages through past challenges, newest first.
func (c *ChallengeController) History(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "authentication required")
		return
	}
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.Error(ctx, http.StatusBadRequest, 40036, "page must be a positive integer")
		return
	}
	pageSize, err := strconv.Atoi(ctx.DefaultQuery("page_size", strconv.Itoa(defaultHistoryPage)))
	if err != nil || pageSize < 1 || pageSize > maxHistoryPage {
		utils.Error(ctx, http.StatusBadRequest, 40037, "page_size must be between 1 and 50")
		return
	}

	views, total, err := c.challenges.History(ctx.Request.Context(), userID, page, pageSize)
	if err != nil {
		respondError(ctx, err)
		return
	}
	items := make([]gin.H, 0, len(views))
	for _, v := range views {
		items = append(items, challengeResponse(v))
	}
	utils.Success(ctx, gin.H{
		"challenges": items,
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}

// Submit records the caller's answer to today's challenge.
func (c *ChallengeController) Submit(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "authentication required")
		return
	}
	var req struct {
		ChallengeID    string `json:"challenge_id" binding:"required"`
		Content        string `json:"content"`
		SubmissionType string `json:"submission_type"`
		Completed      *bool  `json:"completed"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40038, "invalid request payload")
		return
	}
	challengeID, err := uuid.Parse(req.ChallengeID)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40039, "invalid challenge id")
		return
	}
	if len(req.Content) > maxSubmissionContent {
		utils.Error(ctx, http.StatusBadRequest, 40040, "content exceeds 10000 characters")
		return
	}

	kind := strings.ToLower(strings.TrimSpace(req.SubmissionType))
	if kind == "" {
		kind = models.SubmissionText
	}
	if !models.ValidSubmissionType(kind) {
		utils.Error(ctx, http.StatusBadRequest, 40041, "submission_type must be text, code or checkbox")
		return
	}
	content := req.Content
	if kind != models.SubmissionCode {
		content = utils.SanitizePlain(content)
	}
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	sub, err := c.submissions.Submit(ctx.Request.Context(), userID, challengeID, services.SubmissionPayload{
		Content:        content,
		SubmissionType: kind,
		Completed:      completed,
	}, services.Today(c.clock))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Created(ctx, submissionResponse(*sub))
}

func challengeResponse(v services.ChallengeView) gin.H {
	ch := v.Challenge
	return gin.H{
		"id":              ch.ID,
		"title":           ch.Title,
		"description":     ch.Description,
		"category":        ch.Category,
		"difficulty":      ch.Difficulty,
		"expected_output": ch.ExpectedOutput,
		"active_date":     ch.Day().Format(dateLayout),
		"is_active":       ch.IsActive,
		"created_at":      ch.CreatedAt,
		"points":          v.Points,
		"user_submitted":  v.UserSubmitted,
	}
}

func submissionResponse(s models.Submission) gin.H {
	return gin.H{
		"id":              s.ID,
		"user_id":         s.UserID,
		"challenge_id":    s.ChallengeID,
		"content":         s.Content,
		"submission_type": s.SubmissionType,
		"completed":       s.Completed,
		"points_awarded":  s.PointsAwarded,
		"submitted_at":    s.SubmittedAt,
	}
}
