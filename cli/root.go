package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cppla/dailychallenge/config"
	"github.com/cppla/dailychallenge/routes"
	"github.com/cppla/dailychallenge/services"
	"github.com/cppla/dailychallenge/utils"
)

// NewRootCommand creates the dailychallenge command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dailychallenge",
		Short:         "Daily challenge service",
		Long:          "One challenge a day, streaks for showing up, points for finishing.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewRotateCommand())
	cmd.AddCommand(NewSeedCommand())
	cmd.AddCommand(NewMigrateCommand())
	return cmd
}

// bootstrap loads configuration, logging and the database, then builds services.
func bootstrap() (*routes.Services, error) {
	cfg := config.Load()
	if err := utils.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := config.InitDatabase()
	if err != nil {
		return nil, err
	}
	locker := utils.NewRedisLocker(utils.GetRedis())
	return routes.NewServices(db, services.SystemClock{}, locker, utils.Logger), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
