package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/curator/internal/ports/primary"
	"github.com/example/curator/internal/ports/secondary"
	"github.com/example/curator/internal/wire"
)

var notificationCmd = &cobra.Command{
	Use:   "notification",
	Short: "Manage reviewer notifications",
}

var notificationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		recipient, _ := cmd.Flags().GetString("recipient")
		all, _ := cmd.Flags().GetBool("all")

		filters := primary.NotificationFilters{Recipient: recipient}
		if !all {
			filters.Status = secondary.NotificationUnread
		}

		notifications, err := wire.NotificationService().List(ctx, filters)
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}

		if len(notifications) == 0 {
			fmt.Println("No notifications found.")
			return nil
		}

		unreadMark := color.New(color.FgHiCyan).Sprint(" ●")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tREF\tRECIPIENT\tSTATUS\tMESSAGE")
		fmt.Fprintln(w, "--\t---\t---------\t------\t-------")
		for _, item := range notifications {
			mark := ""
			if item.Status == secondary.NotificationUnread {
				mark = unreadMark
			}
			fmt.Fprintf(w, "%s\t%s/%s\t%s\t%s%s\t%s\n",
				item.ID,
				item.RefType,
				item.RefID,
				item.Recipient,
				item.Status,
				mark,
				item.Message,
			)
		}
		w.Flush()
		return nil
	},
}

var notificationReadCmd = &cobra.Command{
	Use:   "read [notification-id]",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.NotificationService().MarkRead(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to mark notification read: %w", err)
		}

		fmt.Printf("Notification %s marked read\n", args[0])
		return nil
	},
}

var notificationDismissCmd = &cobra.Command{
	Use:   "dismiss [notification-id]",
	Short: "Dismiss a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.NotificationService().Dismiss(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to dismiss notification: %w", err)
		}

		fmt.Printf("Notification %s dismissed\n", args[0])
		return nil
	},
}

func init() {
	notificationListCmd.Flags().String("recipient", "", "Filter by recipient")
	notificationListCmd.Flags().Bool("all", false, "Include read and dismissed notifications")

	notificationCmd.AddCommand(notificationListCmd)
	notificationCmd.AddCommand(notificationReadCmd)
	notificationCmd.AddCommand(notificationDismissCmd)
}

// NotificationCmd returns the notification command for registration in main
func NotificationCmd() *cobra.Command {
	return notificationCmd
}
