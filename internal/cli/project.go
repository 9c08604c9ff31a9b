package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/curator/internal/wire"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Inspect the attribution registries",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered project signatures",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		projects, err := wire.ProjectService().ListProjects(ctx)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		if len(projects) == 0 {
			fmt.Println("No projects registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCLIENT\tPLATFORM\tWEIGHT\tALIASES")
		fmt.Fprintln(w, "--\t----\t------\t--------\t------\t-------")
		for _, p := range projects {
			aliases := strings.Join(p.Aliases, ", ")
			if aliases == "" {
				aliases = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%s\n",
				p.ID, p.Name, p.ClientID, p.PlatformID, p.Weight, aliases)
		}
		w.Flush()
		return nil
	},
}

var projectDetectCmd = &cobra.Command{
	Use:   "detect [content]",
	Short: "Score content against the signature registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		attribution, err := wire.ProjectService().Detect(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to detect project: %w", err)
		}

		fmt.Printf("Project: %s", attribution.ProjectID)
		if attribution.ProjectName != "" {
			fmt.Printf(" (%s)", attribution.ProjectName)
		}
		fmt.Printf("\nConfidence: %.2f\n", attribution.Confidence)
		if len(attribution.MatchedSignals) > 0 {
			fmt.Printf("Signals: %s\n", strings.Join(attribution.MatchedSignals, ", "))
		}
		return nil
	},
}

var projectResolvePathCmd = &cobra.Command{
	Use:   "resolve-path [path]",
	Short: "Map a raw path to a registered project path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		resolution, err := wire.ProjectService().ResolvePath(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}

		fmt.Printf("Normalized: %s\n", resolution.NormalizedPath)
		if !resolution.Matched {
			fmt.Println("No registered path matches.")
			return nil
		}
		fmt.Printf("Project: %s\n", resolution.ProjectID)
		fmt.Printf("Kind: %s\n", resolution.Kind)
		return nil
	},
}

func init() {
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectDetectCmd)
	projectCmd.AddCommand(projectResolvePathCmd)
}

// ProjectCmd returns the project command for registration in main
func ProjectCmd() *cobra.Command {
	return projectCmd
}
