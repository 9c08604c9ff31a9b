package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/curator/internal/cli"
	"github.com/example/curator/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "curator",
		Short:   "Curator - routes developer session fragments into typed stores",
		Version: version.String(),
		Long: `Curator ingests unattributed fragments captured from developer sessions,
attributes them to projects and routes them into typed stores. Deletions are
gated behind an explicit flag, approve and execute workflow.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.DetectAndStoreActor()
		},
	}

	// Add subcommands
	rootCmd.AddCommand(cli.ExtractCmd())
	rootCmd.AddCommand(cli.ConflictCmd())
	rootCmd.AddCommand(cli.PurgeCmd())
	rootCmd.AddCommand(cli.NotificationCmd())
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.SweepCmd())
	rootCmd.AddCommand(cli.DaemonCmd())
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
