package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/hive/internal/wire"
)

// CloseCmd returns the close command
func CloseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close <conversation-id>",
		Short: "Close a conversation",
		Long: `Close a conversation. No further messages can land in it; history stays
readable and read state keeps working. Closing twice is harmless.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := wire.CoordinationService().Close(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to close conversation: %w", err)
			}
			fmt.Printf("✓ Closed %s\n", args[0])
			return nil
		},
	}
	return cmd
}
