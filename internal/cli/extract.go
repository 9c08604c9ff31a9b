package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/curator/internal/ports/primary"
	"github.com/example/curator/internal/wire"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Manage the extraction queue",
	Long:  "Run routing cycles and inspect the extraction queue",
}

var extractRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Process one batch of pending extractions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		summary, err := wire.ExtractionService().RunCycle(ctx)
		if err != nil {
			return fmt.Errorf("failed to run extraction cycle: %w", err)
		}

		if summary.Pending == 0 {
			fmt.Println("No pending extractions.")
			return nil
		}

		fmt.Printf("Processed %d of %d pending (%d skipped, %d failed)\n",
			summary.Processed, summary.Pending, summary.Skipped, summary.Failed)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "EXTRACTION\tSTATUS\tTABLE\tPROJECT\tCONF\tNOTE")
		fmt.Fprintln(w, "----------\t------\t-----\t-------\t----\t----")
		for _, r := range summary.Results {
			table := r.Table
			if table == "" {
				table = "-"
			}
			project := r.ProjectID
			if project == "" {
				project = "-"
			}
			note := r.Reason
			if note == "" {
				note = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
				r.ExtractionID, r.Status, table, project, r.Confidence, note)
		}
		w.Flush()
		return nil
	},
}

var extractStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show queue depth per status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		counts, err := wire.ExtractionService().Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to get queue status: %w", err)
		}

		if len(counts) == 0 {
			fmt.Println("Queue is empty.")
			return nil
		}

		statuses := make([]string, 0, len(counts))
		for status := range counts {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STATUS\tCOUNT")
		fmt.Fprintln(w, "------\t-----")
		for _, status := range statuses {
			fmt.Fprintf(w, "%s\t%d\n", status, counts[status])
		}
		w.Flush()
		return nil
	},
}

var extractRequeueCmd = &cobra.Command{
	Use:   "requeue [extraction-id]",
	Short: "Flip a failed extraction back to pending",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		extractionID := args[0]

		if err := wire.ExtractionService().Requeue(ctx, extractionID); err != nil {
			return fmt.Errorf("failed to requeue extraction: %w", err)
		}

		fmt.Printf("Extraction %s requeued\n", extractionID)
		return nil
	},
}

var extractSubmitCmd = &cobra.Command{
	Use:   "submit [content]",
	Short: "Enqueue a raw fragment for routing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		category, _ := cmd.Flags().GetString("category")
		projectPath, _ := cmd.Flags().GetString("path")
		priority, _ := cmd.Flags().GetInt("priority")

		id, err := wire.ExtractionService().Submit(ctx, primary.SubmitExtractionRequest{
			Content:     args[0],
			Category:    category,
			ProjectPath: projectPath,
			Priority:    priority,
		})
		if err != nil {
			return fmt.Errorf("failed to submit extraction: %w", err)
		}

		fmt.Printf("Extraction %s queued\n", id)
		return nil
	},
}

func init() {
	extractSubmitCmd.Flags().String("category", "", "Category hint (bug, idea, lesson, code_solution)")
	extractSubmitCmd.Flags().String("path", "", "Project path associated with the fragment")
	extractSubmitCmd.Flags().Int("priority", 0, "Queue priority (higher routes first)")

	extractCmd.AddCommand(extractRunCmd)
	extractCmd.AddCommand(extractStatusCmd)
	extractCmd.AddCommand(extractRequeueCmd)
	extractCmd.AddCommand(extractSubmitCmd)
}

// ExtractCmd returns the extract command for registration in main
func ExtractCmd() *cobra.Command {
	return extractCmd
}
