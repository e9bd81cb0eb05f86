package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"

	"github.com/cppla/dailychallenge/config"
	"github.com/cppla/dailychallenge/controllers"
	"github.com/cppla/dailychallenge/middleware"
	"github.com/cppla/dailychallenge/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(svc *Services) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to its own rolling file at the application log level
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(ginzap.Ginzap(gl, time.RFC3339, true))
		r.Use(ginzap.RecoveryWithZap(gl, true))
	} else {
		utils.Sugar.Warnf("gin logger disabled: %v", err)
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok", "time": svc.Clock.Now().UTC()})
	})

	authController := controllers.NewAuthController(svc.Accounts)
	challengeController := controllers.NewChallengeController(svc.Challenges, svc.Submissions, svc.Clock)
	userController := controllers.NewUserController(svc.Users)
	adminController := controllers.NewAdminController(svc.Challenges, svc.Scheduler)
	statsController := controllers.NewStatsController(svc.DB, svc.Clock)

	limiter := middleware.RateLimitMiddleware(cfg.RateLimitPerMinute)
	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(limiter)
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)

	// Public stats endpoint
	api.GET("/stats", statsController.GetStats)
	api.GET("/user/leaderboard", userController.Leaderboard)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), limiter)
	protected.GET("/challenge/today", challengeController.Today)
	protected.GET("/challenge/history", challengeController.History)
	protected.POST("/challenge/submit", challengeController.Submit)
	protected.GET("/user/me", userController.Me)
	protected.GET("/user/submissions", userController.Submissions)

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminRequired())
	admin.POST("/challenges", adminController.CreateChallenge)
	admin.POST("/rotation", adminController.Rotate)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
	})

	return r
}
