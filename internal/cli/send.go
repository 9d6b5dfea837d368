package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/hive/internal/config"
	"github.com/example/hive/internal/ports/primary"
	"github.com/example/hive/internal/wire"
)

// SendCmd returns the send command
func SendCmd() *cobra.Command {
	var to, subject, priority, taskID, epicID, artifact, expiresAt, from string

	cmd := &cobra.Command{
		Use:   "send <body>",
		Short: "Send a direct message to another agent",
		Long: `Send a direct message to another agent.

The open conversation between the two of you is reused; if none exists one
is created. After a conversation is closed, the next send starts a new one.

Examples:
  hive send "Auth endpoint is live on the branch" --to frontend-1 --subject "Auth ready"
  hive send "DB migration blocked on review" --to architect-1 --priority high`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			sender, err := resolveSender(from)
			if err != nil {
				return err
			}
			if to == "" {
				return fmt.Errorf("--to is required")
			}
			if priority == "" {
				if cfg, err := config.Load(); err == nil {
					priority = cfg.DefaultPriority
				}
			}

			resp, err := wire.CoordinationService().Send(ctx, primary.SendRequest{
				Sender:    sender,
				Recipient: to,
				Subject:   subject,
				Body:      args[0],
				Priority:  priority,
				TaskID:    taskID,
				EpicID:    epicID,
				Artifact:  artifact,
				ExpiresAt: expiresAt,
			})
			if err != nil {
				return fmt.Errorf("failed to send: %w", err)
			}

			fmt.Printf("✓ Sent %s in %s\n", resp.Message.ID, resp.ConversationID)
			fmt.Printf("  From: %s\n", sender)
			fmt.Printf("  To: %s\n", to)
			if subject != "" {
				fmt.Printf("  Subject: %s\n", subject)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient agent (required)")
	cmd.Flags().StringVar(&subject, "subject", "", "Message subject")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority: critical, high, medium, low")
	cmd.Flags().StringVar(&taskID, "task", "", "Related task ID")
	cmd.Flags().StringVar(&epicID, "epic", "", "Related epic ID")
	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact reference (path, URL, commit)")
	cmd.Flags().StringVar(&expiresAt, "expires", "", "Advisory expiry (RFC3339)")
	cmd.Flags().StringVar(&from, "from", "", "Override the sender identity")

	return cmd
}
