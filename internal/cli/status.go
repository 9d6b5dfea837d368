package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hive/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <conversation-id|message-id>",
		Short: "Show who has and has not caught up",
		Long: `Show audience coverage for a conversation (or the conversation a message
belongs to): the currently-eligible participants, who has viewed through
the latest message, and who is behind.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			report, err := wire.CoordinationService().Status(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}

			fmt.Printf("%s (%s, %s)\n", color.New(color.Bold).Sprint(report.ConversationID), report.Kind, report.State)
			if report.Scope != "" {
				fmt.Printf("  Scope: %s\n", report.Scope)
			}
			fmt.Printf("  Eligible: %d\n", len(report.Eligible))
			for _, participant := range report.CaughtUp {
				fmt.Printf("    %s %s\n", color.New(color.FgGreen).Sprint("✓"), participant)
			}
			for _, participant := range report.Behind {
				fmt.Printf("    %s %s\n", color.New(color.FgYellow).Sprint("…"), participant)
			}
			return nil
		},
	}
	return cmd
}
