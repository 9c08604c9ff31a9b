package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/curator/internal/wire"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run maintenance sweeps",
}

var sweepRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one dedup and retention sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		summary, err := wire.SweepService().RunCycle(ctx)
		if err != nil {
			return fmt.Errorf("failed to run sweep: %w", err)
		}

		fmt.Printf("Duplicates removed: %d\n", summary.DuplicatesRemoved)
		fmt.Printf("Empty sessions pruned: %d\n", summary.SessionsPruned)
		fmt.Printf("Completed session messages pruned: %d\n", summary.MessagesPruned)
		if summary.StoreErrors > 0 {
			fmt.Printf("Stores skipped due to errors: %d\n", summary.StoreErrors)
		}
		return nil
	},
}

func init() {
	sweepCmd.AddCommand(sweepRunCmd)
}

// SweepCmd returns the sweep command for registration in main
func SweepCmd() *cobra.Command {
	return sweepCmd
}
