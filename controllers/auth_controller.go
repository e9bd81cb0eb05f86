package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/dailychallenge/middleware"
	"github.com/cppla/dailychallenge/models"
	"github.com/cppla/dailychallenge/services"
	"github.com/cppla/dailychallenge/utils"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

// AuthController handles registration, login and logout.
type AuthController struct {
	accounts *services.AccountService
}

// NewAuthController creates an AuthController.
func NewAuthController(accounts *services.AccountService) *AuthController {
	return &AuthController{accounts: accounts}
}

// Register creates a local account and returns a token.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6,max=100"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	if !usernamePattern.MatchString(req.Username) {
		utils.Error(ctx, http.StatusBadRequest, 40002, "username must be 3-50 letters, digits or underscores")
		return
	}

	ip := ctx.ClientIP()
	if !utils.RegistrationAllowed(ctx.Request.Context(), ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42921, "daily registration limit reached")
		return
	}

	user, err := a.accounts.Register(ctx.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.RegistrationRecord(ctx.Request.Context(), ip)

	a.respondWithToken(ctx, http.StatusCreated, user)
}

// Login verifies email and password and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	user, err := a.accounts.Authenticate(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	a.respondWithToken(ctx, http.StatusOK, user)
}

// Logout revokes the presented token until it would have expired.
func (a *AuthController) Logout(ctx *gin.Context) {
	token := ctx.GetString(middleware.ContextTokenKey)
	claims, ok := ctx.Get(middleware.ContextClaimsKey)
	c, _ := claims.(*utils.Claims)
	if !ok || c == nil || token == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	expiresAt := time.Now().Add(utils.TokenTTL())
	if c.ExpiresAt != nil {
		expiresAt = c.ExpiresAt.Time
	}
	utils.BlacklistToken(ctx.Request.Context(), token, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

func (a *AuthController) respondWithToken(ctx *gin.Context, status int, user *models.User) {
	token, err := utils.GenerateToken(user.ID, user.Username, utils.TokenTTL())
	if err != nil {
		respondError(ctx, errors.Join(errors.New("generate token"), err))
		return
	}
	utils.Respond(ctx, status, 0, "success", gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userResponse(*user),
	})
}

func userResponse(u models.User) gin.H {
	return gin.H{
		"id":                  u.ID,
		"username":            u.Username,
		"email":               u.Email,
		"current_streak":      u.CurrentStreak,
		"longest_streak":      u.LongestStreak,
		"total_points":        u.TotalPoints,
		"last_completed_date": formatDate(u.LastCompleted()),
		"created_at":          u.CreatedAt,
		"is_admin":            middleware.IsAdminUsername(u.Username),
	}
}

func formatDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(dateLayout)
}

const dateLayout = "2006-01-02"
