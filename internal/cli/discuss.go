package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/hive/internal/ports/primary"
	"github.com/example/hive/internal/wire"
)

// DiscussCmd returns the discuss command
func DiscussCmd() *cobra.Command {
	var scope, subject, priority, taskID, epicID, artifact, from string

	cmd := &cobra.Command{
		Use:   "discuss <body>",
		Short: "Open a group discussion for a dynamic scope",
		Long: `Open a group discussion addressed to a scope instead of a person.

The audience is resolved against the mission registry every time someone
reads, so agents who start matching missions later see the whole history.

Scopes:
  role:<name>   every active agent holding the role
  epic:<id>     every active agent whose claimed task belongs to the epic
  all           every active agent

Examples:
  hive discuss "Dropping pool size to 10" --scope role:backend --subject "Pool sizing"
  hive discuss "Payload gains a version field" --scope epic:EPIC-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			sender, err := resolveSender(from)
			if err != nil {
				return err
			}
			if scope == "" {
				return fmt.Errorf("--scope is required")
			}

			resp, err := wire.CoordinationService().Discuss(ctx, primary.DiscussRequest{
				Sender:   sender,
				Scope:    scope,
				Subject:  subject,
				Body:     args[0],
				Priority: priority,
				TaskID:   taskID,
				EpicID:   epicID,
				Artifact: artifact,
			})
			if err != nil {
				return fmt.Errorf("failed to open discussion: %w", err)
			}

			fmt.Printf("✓ Opened %s (%s) with root %s\n", resp.ConversationID, scope, resp.Message.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Audience scope: role:<name>, epic:<id>, or all (required)")
	cmd.Flags().StringVar(&subject, "subject", "", "Discussion subject")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority: critical, high, medium, low")
	cmd.Flags().StringVar(&taskID, "task", "", "Related task ID")
	cmd.Flags().StringVar(&epicID, "epic", "", "Related epic ID")
	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact reference (path, URL, commit)")
	cmd.Flags().StringVar(&from, "from", "", "Override the sender identity")

	return cmd
}
