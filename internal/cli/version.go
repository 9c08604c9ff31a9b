package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/curator/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

// VersionCmd returns the version command for registration in main
func VersionCmd() *cobra.Command {
	return versionCmd
}
