package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/example/hive/internal/config"
	"github.com/example/hive/internal/wire"
)

// DeskCmd returns the desk command
func DeskCmd() *cobra.Command {
	var interval time.Duration
	var from string

	cmd := &cobra.Command{
		Use:   "desk",
		Short: "Poll your inbox continuously",
		Long: `Poll your inbox on an interval and print a status line whenever unread
counts change. Inside tmux the window title tracks the unread total, so a
glance at the status bar shows whether anything is waiting.

Delivery stays pull-based: desk mode is just a loop over the same inbox
query every agent runs by hand.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			participant, err := resolveSender(from)
			if err != nil {
				return err
			}
			if interval == 0 {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				if interval, err = cfg.DeskEvery(); err != nil {
					return err
				}
			}

			fmt.Printf("Desk mode for %s, polling every %s. Ctrl-C to stop.\n", participant, interval)

			poll := func() { pollInbox(NewContext(), participant) }
			poll()

			scheduler := cron.New()
			if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", interval), poll); err != nil {
				return fmt.Errorf("failed to schedule polling: %w", err)
			}
			scheduler.Start()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			<-scheduler.Stop().Done()
			fmt.Println("\nDesk closed.")
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval (default from config)")
	cmd.Flags().StringVar(&from, "from", "", "Override the participant identity")

	return cmd
}

func pollInbox(ctx context.Context, participant string) {
	entries, err := wire.CoordinationService().Inbox(ctx, participant, true)
	if err != nil {
		fmt.Printf("%s poll failed: %v\n", color.New(color.FgRed).Sprint("✗"), err)
		return
	}

	total := 0
	for _, entry := range entries {
		total += entry.Unread
	}

	stamp := time.Now().Format("15:04:05")
	if total == 0 {
		fmt.Printf("[%s] %s\n", stamp, color.New(color.FgGreen).Sprint("all caught up"))
	} else {
		line := color.New(color.FgYellow, color.Bold).Sprintf("%d unread in %d conversations", total, len(entries))
		fmt.Printf("[%s] %s\n", stamp, line)
		for _, entry := range entries {
			c := entry.Conversation
			fmt.Printf("    %s  %s (%d)\n", c.ID, truncate(c.Subject, 40), entry.Unread)
		}
	}

	updateWindowTitle(participant, total)
}

// updateWindowTitle reflects the unread total in the tmux window name.
// A no-op outside tmux.
func updateWindowTitle(participant string, unread int) {
	tmux := wire.TmuxAdapter()
	if !tmux.InsideSession() {
		return
	}
	title := fmt.Sprintf("%s ✓", participant)
	if unread > 0 {
		title = fmt.Sprintf("%s ✉ %d", participant, unread)
	}
	_ = tmux.SetWindowTitle(title)
}
