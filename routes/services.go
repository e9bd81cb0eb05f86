package routes

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cppla/dailychallenge/config"
	"github.com/cppla/dailychallenge/models"
	"github.com/cppla/dailychallenge/repository"
	"github.com/cppla/dailychallenge/services"
	"github.com/cppla/dailychallenge/utils"
)

// Services groups everything the HTTP layer and the CLI need.
type Services struct {
	DB          *gorm.DB
	Clock       services.Clock
	Accounts    *services.AccountService
	Challenges  *services.ChallengeService
	Submissions *services.SubmissionService
	Users       *services.UserService
	Rotation    *services.RotationService
	Scheduler   *services.DailyScheduler
}

// NewServices builds the service graph on db. locker may be nil.
func NewServices(db *gorm.DB, clock services.Clock, locker services.Locker, log *zap.Logger) *Services {
	cfg := config.Get()
	store := repository.NewGormStore(db)

	rotation := services.NewRotationService(store, log.Named("rotation"))
	s := &Services{
		DB:          db,
		Clock:       clock,
		Accounts:    services.NewAccountService(store, log.Named("account")),
		Challenges:  services.NewChallengeService(store, clock, log.Named("challenge")),
		Submissions: services.NewSubmissionService(store, clock, log.Named("submission")),
		Users:       services.NewUserService(store),
		Rotation:    rotation,
		Scheduler: services.NewDailyScheduler(rotation, clock, locker, services.SchedulerConfig{
			LockTTL:    time.Duration(cfg.RotationLockTTLSeconds) * time.Second,
			RetryDelay: time.Duration(cfg.RotationRetrySeconds) * time.Second,
		}, log.Named("scheduler")),
	}

	// leaderboard order changes with every award
	s.Submissions.OnSubmitted(func(ctx context.Context, _ *models.Submission) {
		utils.InvalidateByPrefix(ctx, utils.LeaderboardCachePrefix)
	})
	return s
}
