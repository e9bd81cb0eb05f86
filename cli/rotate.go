package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cppla/dailychallenge/services"
)

// NewRotateCommand creates the rotate command.
func NewRotateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Activate today's challenge once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := bootstrap()
			if err != nil {
				return err
			}
			ch, err := svc.Scheduler.RunOnce(commandContext(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ch == nil {
				fmt.Fprintf(out, "no challenge scheduled for %s\n", services.Today(svc.Clock).Format("2006-01-02"))
				return nil
			}
			fmt.Fprintf(out, "activated %s %q\n", ch.ID, ch.Title)
			return nil
		},
	}
}
