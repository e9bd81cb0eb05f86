package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/dailychallenge/config"
	"github.com/cppla/dailychallenge/middleware"
	"github.com/cppla/dailychallenge/services"
	"github.com/cppla/dailychallenge/utils"
)

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 100
	defaultSubmissionsLimit = 10
	maxSubmissionsLimit     = 50
)

// UserController serves profile, leaderboard and submission history.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a UserController.
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Me returns the caller's profile with rank.
func (u *UserController) Me(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "authentication required")
		return
	}
	profile, err := u.users.Profile(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	resp := userResponse(profile.User)
	resp["rank"] = profile.Rank
	resp["total_submissions"] = profile.TotalSubmissions
	utils.Success(ctx, resp)
}

// Submissions lists the caller's most recent submissions.
func (u *UserController) Submissions(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "authentication required")
		return
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultSubmissionsLimit)))
	if err != nil || limit < 1 || limit > maxSubmissionsLimit {
		utils.Error(ctx, http.StatusBadRequest, 40042, "limit must be between 1 and 50")
		return
	}
	subs, err := u.users.Submissions(ctx.Request.Context(), userID, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	items := make([]gin.H, 0, len(subs))
	for _, s := range subs {
		items = append(items, submissionResponse(s))
	}
	utils.Success(ctx, gin.H{"submissions": items})
}

// Leaderboard ranks users by total points. Responses are cached in Redis
// until the next submission invalidates them.
func (u *UserController) Leaderboard(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultLeaderboardLimit)))
	if err != nil || limit < 1 || limit > maxLeaderboardLimit {
		utils.Error(ctx, http.StatusBadRequest, 40043, "limit must be between 1 and 100")
		return
	}

	key := fmt.Sprintf("%slimit=%d", utils.LeaderboardCachePrefix, limit)
	if b, ok := utils.CacheGetBytes(ctx.Request.Context(), key); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	entries, err := u.users.Leaderboard(ctx.Request.Context(), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	resp := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"leaderboard": entries}}
	ttl := time.Duration(config.Get().LeaderboardCacheSeconds) * time.Second
	utils.CacheSetJSON(ctx.Request.Context(), key, resp, ttl)
	ctx.JSON(http.StatusOK, resp)
}
