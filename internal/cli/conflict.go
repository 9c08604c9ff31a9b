package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/curator/internal/ports/primary"
	"github.com/example/curator/internal/wire"
)

var conflictCmd = &cobra.Command{
	Use:   "conflict",
	Short: "Manage conflicts",
	Long:  "Flag, list and resolve conflicts between stored records and new content",
}

var conflictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conflicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		status, _ := cmd.Flags().GetString("status")
		table, _ := cmd.Flags().GetString("table")

		conflicts, err := wire.ConflictService().List(ctx, primary.ConflictFilters{
			Status:   status,
			RefTable: table,
		})
		if err != nil {
			return fmt.Errorf("failed to list conflicts: %w", err)
		}

		if len(conflicts) == 0 {
			fmt.Println("No conflicts found.")
			return nil
		}

		pendingMark := color.New(color.FgHiYellow).Sprint(" ←")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTABLE\tRECORD\tTYPE\tPRIORITY\tSTATUS\tCREATED")
		fmt.Fprintln(w, "--\t-----\t------\t----\t--------\t------\t-------")
		for _, item := range conflicts {
			mark := ""
			if item.Status == "pending" {
				mark = pendingMark
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s%s\t%s\n",
				item.ID,
				item.RefTable,
				item.RefID,
				item.ConflictType,
				item.Priority,
				item.Status,
				mark,
				item.CreatedAt,
			)
		}
		w.Flush()
		return nil
	},
}

var conflictShowCmd = &cobra.Command{
	Use:   "show [conflict-id]",
	Short: "Show conflict details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		conflictID := args[0]

		conflict, err := wire.ConflictService().Get(ctx, conflictID)
		if err != nil {
			return fmt.Errorf("conflict not found: %w", err)
		}

		fmt.Printf("Conflict: %s\n", conflict.ID)
		fmt.Printf("Record: %s/%s\n", conflict.RefTable, conflict.RefID)
		fmt.Printf("Type: %s\n", conflict.ConflictType)
		fmt.Printf("Priority: %d\n", conflict.Priority)
		fmt.Printf("Status: %s\n", conflict.Status)
		if conflict.Description != "" {
			fmt.Printf("Description: %s\n", conflict.Description)
		}
		fmt.Printf("Created: %s\n", conflict.CreatedAt)
		if conflict.ResolvedBy != "" {
			fmt.Printf("Resolved by: %s at %s\n", conflict.ResolvedBy, conflict.ResolvedAt)
			if conflict.ResolutionNotes != "" {
				fmt.Printf("Notes: %s\n", conflict.ResolutionNotes)
			}
		}
		fmt.Printf("\nExisting content:\n%s\n", conflict.ExistingContent)
		fmt.Printf("\nNew content:\n%s\n", conflict.NewContent)
		return nil
	},
}

var conflictFlagCmd = &cobra.Command{
	Use:   "flag [table] [record-id]",
	Short: "Flag a conflict against a stored record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		newContent, _ := cmd.Flags().GetString("new-content")
		conflictType, _ := cmd.Flags().GetString("type")
		description, _ := cmd.Flags().GetString("description")
		priority, _ := cmd.Flags().GetInt("priority")

		conflict, err := wire.ConflictService().Flag(ctx, primary.FlagConflictRequest{
			RefTable:     args[0],
			RefID:        args[1],
			NewContent:   newContent,
			ConflictType: conflictType,
			Description:  description,
			Priority:     priority,
		})
		if err != nil {
			return fmt.Errorf("failed to flag conflict: %w", err)
		}

		fmt.Printf("Conflict %s flagged (%s on %s/%s)\n",
			conflict.ID, conflict.ConflictType, conflict.RefTable, conflict.RefID)
		return nil
	},
}

var conflictResolveCmd = &cobra.Command{
	Use:   "resolve [conflict-id]",
	Short: "Resolve a pending conflict",
	Long:  "Resolve a pending conflict with keep_existing, update, both_valid or dismiss",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		resolution, _ := cmd.Flags().GetString("resolution")
		notes, _ := cmd.Flags().GetString("notes")

		resp, err := wire.ConflictService().Resolve(ctx, primary.ResolveConflictRequest{
			ConflictID: args[0],
			ResolverID: GetActorID(),
			Resolution: resolution,
			Notes:      notes,
		})
		if err != nil {
			return fmt.Errorf("failed to resolve conflict: %w", err)
		}

		fmt.Printf("Conflict %s resolved: %s\n", resp.Conflict.ID, resp.Conflict.Status)
		if resp.InsertedRecordID != "" {
			fmt.Printf("Coexisting record created: %s\n", resp.InsertedRecordID)
		}
		return nil
	},
}

func init() {
	conflictListCmd.Flags().String("status", "", "Filter by status (pending, resolved_*, dismissed)")
	conflictListCmd.Flags().String("table", "", "Filter by referenced table")

	conflictFlagCmd.Flags().String("new-content", "", "The competing content (required)")
	conflictFlagCmd.Flags().String("type", "", "Conflict type: duplicate, contradiction or update (required)")
	conflictFlagCmd.Flags().String("description", "", "Free-text description of the overlap")
	conflictFlagCmd.Flags().Int("priority", 0, "Review priority (higher surfaces first)")
	conflictFlagCmd.MarkFlagRequired("new-content")
	conflictFlagCmd.MarkFlagRequired("type")

	conflictResolveCmd.Flags().String("resolution", "", "keep_existing, update, both_valid or dismiss (required)")
	conflictResolveCmd.Flags().String("notes", "", "Resolution notes")
	conflictResolveCmd.MarkFlagRequired("resolution")

	conflictCmd.AddCommand(conflictListCmd)
	conflictCmd.AddCommand(conflictShowCmd)
	conflictCmd.AddCommand(conflictFlagCmd)
	conflictCmd.AddCommand(conflictResolveCmd)
}

// ConflictCmd returns the conflict command for registration in main
func ConflictCmd() *cobra.Command {
	return conflictCmd
}
