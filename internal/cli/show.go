package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hive/internal/core/comms"
	"github.com/example/hive/internal/ports/primary"
	"github.com/example/hive/internal/wire"
)

// ShowCmd returns the show command
func ShowCmd() *cobra.Command {
	var markViewed bool
	var from string

	cmd := &cobra.Command{
		Use:   "show <conversation-id>",
		Short: "Show a conversation's history",
		Long: `Show a conversation with its full message history.

Group discussions render as reply trees; direct conversations render flat.
With --mark-viewed your read bookmark moves to now, which is the only way
reading is ever recorded.

Example:
  hive show DISC-0003 --mark-viewed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			service := wire.CoordinationService()

			view, err := service.Show(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to show conversation: %w", err)
			}

			printConversationHeader(view.Conversation)
			if view.Conversation.Kind == comms.KindGroup {
				printThreaded(view.Messages)
			} else {
				for _, msg := range view.Messages {
					printMessage(msg, 0)
				}
			}

			if markViewed {
				participant, err := resolveSender(from)
				if err != nil {
					return err
				}
				if err := service.MarkViewed(ctx, view.Conversation.ID, participant); err != nil {
					return fmt.Errorf("failed to mark viewed: %w", err)
				}
				fmt.Printf("\n✓ Marked viewed for %s\n", participant)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&markViewed, "mark-viewed", false, "Move your read bookmark to now")
	cmd.Flags().StringVar(&from, "from", "", "Override the participant identity")

	return cmd
}

func printConversationHeader(c *primary.Conversation) {
	title := c.Subject
	if title == "" {
		title = "(no subject)"
	}
	fmt.Printf("%s  %s\n", color.New(color.Bold).Sprint(c.ID), title)
	if c.Kind == comms.KindGroup {
		fmt.Printf("  Scope: %s\n", c.Scope)
	} else {
		fmt.Printf("  Between: %s and %s\n", c.ParticipantA, c.ParticipantB)
	}
	state := c.State
	if c.State == comms.StateClosed {
		state = color.New(color.FgRed).Sprintf("%s (%s)", c.State, c.ClosedAt)
	}
	fmt.Printf("  State: %s\n\n", state)
}

// printThreaded renders messages as reply trees, roots in arrival order.
func printThreaded(messages []*primary.Message) {
	children := make(map[string][]*primary.Message)
	var roots []*primary.Message
	for _, msg := range messages {
		if msg.ParentID == "" {
			roots = append(roots, msg)
		} else {
			children[msg.ParentID] = append(children[msg.ParentID], msg)
		}
	}

	var walk func(msg *primary.Message, depth int)
	walk = func(msg *primary.Message, depth int) {
		printMessage(msg, depth)
		for _, child := range children[msg.ID] {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
}

func printMessage(msg *primary.Message, depth int) {
	indent := strings.Repeat("  ", depth)
	id := priorityColor(msg.Priority).Sprint(msg.ID)
	fmt.Printf("%s%s  %s  %s\n", indent, id, msg.Sender, msg.CreatedAt)
	for _, line := range strings.Split(msg.Body, "\n") {
		fmt.Printf("%s  %s\n", indent, line)
	}
	if msg.Artifact != "" {
		fmt.Printf("%s  ↳ %s\n", indent, msg.Artifact)
	}
}
