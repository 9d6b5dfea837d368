package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/hive/internal/ports/primary"
	"github.com/example/hive/internal/wire"
)

// ReplyCmd returns the reply command
func ReplyCmd() *cobra.Command {
	var priority, artifact, from string

	cmd := &cobra.Command{
		Use:   "reply <message-id> <body>",
		Short: "Reply to a message",
		Long: `Reply to an existing message in its conversation.

In group discussions the reply joins the target's thread; in direct
conversations history stays flat and the target only identifies the
conversation.

Example:
  hive reply MSG-H-0042 "Wiring it up now"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			sender, err := resolveSender(from)
			if err != nil {
				return err
			}

			resp, err := wire.CoordinationService().Reply(ctx, primary.ReplyRequest{
				Sender:    sender,
				MessageID: args[0],
				Body:      args[1],
				Priority:  priority,
				Artifact:  artifact,
			})
			if err != nil {
				return fmt.Errorf("failed to reply: %w", err)
			}

			fmt.Printf("✓ Replied %s in %s\n", resp.Message.ID, resp.ConversationID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority: critical, high, medium, low")
	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact reference (path, URL, commit)")
	cmd.Flags().StringVar(&from, "from", "", "Override the sender identity")

	return cmd
}
