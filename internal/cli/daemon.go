package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/curator/internal/wire"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the router and sweep on their configured intervals",
	Long:  "Runs extraction cycles and maintenance sweeps until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(NewContext(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg := wire.Config()
		fmt.Printf("curator daemon starting (router every %s, sweep every %s)\n",
			cfg.RouterInterval, cfg.SweepInterval)

		wire.Scheduler().Run(ctx)
		fmt.Println("curator daemon stopped")
		return nil
	},
}

// DaemonCmd returns the daemon command for registration in main
func DaemonCmd() *cobra.Command {
	return daemonCmd
}
