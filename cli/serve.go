package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cppla/dailychallenge/config"
	"github.com/cppla/dailychallenge/routes"
	"github.com/cppla/dailychallenge/utils"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the daily rotation scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := bootstrap()
			if err != nil {
				return err
			}
			defer utils.Logger.Sync() //nolint:errcheck

			ctx, cancel := context.WithCancel(commandContext(cmd))
			defer cancel()
			svc.Scheduler.Start(ctx)

			port := config.Get().AppPort
			srv := utils.NewServer(":"+port, routes.SetupRouter(svc))
			srv.OnShutdown(cancel)

			utils.Sugar.Infof("Starting server on port %s (graceful)", port)
			return srv.ListenAndServe()
		},
	}
}
