package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/curator/internal/ports/primary"
	"github.com/example/curator/internal/wire"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Manage purge requests",
	Long:  "Flag, review and execute gated deletions",
}

var purgeFlagCmd = &cobra.Command{
	Use:   "flag [table]",
	Short: "Propose deletion of a record set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		ids, _ := cmd.Flags().GetStringSlice("ids")
		reason, _ := cmd.Flags().GetString("reason")

		request, err := wire.PurgeService().Flag(ctx, primary.FlagPurgeRequest{
			TargetTable: args[0],
			RecordIDs:   ids,
			Reason:      reason,
		})
		if err != nil {
			return fmt.Errorf("failed to flag purge request: %w", err)
		}

		fmt.Printf("Purge request %s flagged (%d records from %s)\n",
			request.ID, len(request.RecordIDs), request.TargetTable)
		fmt.Println("Nothing is deleted until the request is approved and executed.")
		return nil
	},
}

var purgeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List purge requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		status, _ := cmd.Flags().GetString("status")

		requests, err := wire.PurgeService().List(ctx, primary.PurgeFilters{Status: status})
		if err != nil {
			return fmt.Errorf("failed to list purge requests: %w", err)
		}

		if len(requests) == 0 {
			fmt.Println("No purge requests found.")
			return nil
		}

		readyMark := color.New(color.FgHiGreen).Sprint(" ←")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTABLE\tRECORDS\tSTATUS\tFLAGGED BY\tCREATED")
		fmt.Fprintln(w, "--\t-----\t-------\t------\t----------\t-------")
		for _, item := range requests {
			mark := ""
			if item.Status == "approved" && item.ExecutedAt == "" {
				mark = readyMark
			}
			flaggedBy := item.FlaggedBy
			if flaggedBy == "" {
				flaggedBy = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s%s\t%s\t%s\n",
				item.ID,
				item.TargetTable,
				len(item.RecordIDs),
				item.Status,
				mark,
				flaggedBy,
				item.CreatedAt,
			)
		}
		w.Flush()
		return nil
	},
}

var purgeShowCmd = &cobra.Command{
	Use:   "show [request-id]",
	Short: "Show purge request details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		request, err := wire.PurgeService().Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("purge request not found: %w", err)
		}

		fmt.Printf("Purge request: %s\n", request.ID)
		fmt.Printf("Table: %s\n", request.TargetTable)
		fmt.Printf("Records: %s\n", strings.Join(request.RecordIDs, ", "))
		fmt.Printf("Reason: %s\n", request.Reason)
		fmt.Printf("Status: %s\n", request.Status)
		fmt.Printf("Flagged by: %s\n", request.FlaggedBy)
		fmt.Printf("Created: %s\n", request.CreatedAt)
		if request.ReviewedBy != "" {
			fmt.Printf("Reviewed by: %s at %s\n", request.ReviewedBy, request.ReviewedAt)
		}
		if request.ExecutedAt != "" {
			fmt.Printf("Executed: %s\n", request.ExecutedAt)
		}
		return nil
	},
}

var purgeApproveCmd = &cobra.Command{
	Use:   "approve [request-id]",
	Short: "Approve a pending purge request (deletes nothing)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		request, err := wire.PurgeService().Approve(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to approve purge request: %w", err)
		}

		fmt.Printf("Purge request %s approved\n", request.ID)
		fmt.Printf("Run 'curator purge execute %s' to delete the records.\n", request.ID)
		return nil
	},
}

var purgeRejectCmd = &cobra.Command{
	Use:   "reject [request-id]",
	Short: "Reject a pending purge request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		request, err := wire.PurgeService().Reject(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to reject purge request: %w", err)
		}

		fmt.Printf("Purge request %s rejected\n", request.ID)
		return nil
	},
}

var purgeExecuteCmd = &cobra.Command{
	Use:   "execute [request-id]",
	Short: "Execute an approved purge request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		execution, err := wire.PurgeService().Execute(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to execute purge request: %w", err)
		}

		fmt.Printf("Purge request %s executed: %d records deleted from %s\n",
			execution.Request.ID, execution.Deleted, execution.Request.TargetTable)
		return nil
	},
}

func init() {
	purgeFlagCmd.Flags().StringSlice("ids", nil, "Record IDs to delete (required)")
	purgeFlagCmd.Flags().String("reason", "", "Why these records should go (required)")
	purgeFlagCmd.MarkFlagRequired("ids")
	purgeFlagCmd.MarkFlagRequired("reason")

	purgeListCmd.Flags().String("status", "", "Filter by status (pending, approved, rejected)")

	purgeCmd.AddCommand(purgeFlagCmd)
	purgeCmd.AddCommand(purgeListCmd)
	purgeCmd.AddCommand(purgeShowCmd)
	purgeCmd.AddCommand(purgeApproveCmd)
	purgeCmd.AddCommand(purgeRejectCmd)
	purgeCmd.AddCommand(purgeExecuteCmd)
}

// PurgeCmd returns the purge command for registration in main
func PurgeCmd() *cobra.Command {
	return purgeCmd
}
