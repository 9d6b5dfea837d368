package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hive/internal/wire"
)

// InboxCmd returns the inbox command
func InboxCmd() *cobra.Command {
	var all bool
	var from string

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List your conversations with unread counts",
		Long: `List the conversations visible to you: your direct conversations plus
every group discussion whose current audience includes you.

By default only conversations with unread messages are shown; --all lists
everything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			participant, err := resolveSender(from)
			if err != nil {
				return err
			}

			entries, err := wire.CoordinationService().Inbox(ctx, participant, !all)
			if err != nil {
				return fmt.Errorf("failed to load inbox: %w", err)
			}

			if len(entries) == 0 {
				if all {
					fmt.Println("No conversations.")
				} else {
					fmt.Println("All caught up.")
				}
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWITH\tSUBJECT\tSTATE\tUNREAD")
			for _, entry := range entries {
				c := entry.Conversation
				unread := fmt.Sprintf("%d", entry.Unread)
				if entry.Unread > 0 {
					unread = color.New(color.FgYellow, color.Bold).Sprint(unread)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					c.ID,
					conversationLabel(c.Kind, c.ParticipantA, c.ParticipantB, c.Scope, participant),
					truncate(c.Subject, 40),
					c.State,
					unread,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include conversations with nothing unread")
	cmd.Flags().StringVar(&from, "from", "", "Override the participant identity")

	return cmd
}
