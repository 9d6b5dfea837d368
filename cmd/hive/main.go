package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/hive/internal/cli"
	"github.com/example/hive/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "hive",
		Short:   "Hive - asynchronous coordination for autonomous agents",
		Version: version.String(),
		Long: `Hive is the coordination mailbox for autonomous agents working a shared
codebase. Direct messages, dynamically-scoped group discussions, threading,
and per-participant read state, all over a shared database with no broker:
agents poll when they choose to.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.SendCmd())
	rootCmd.AddCommand(cli.DiscussCmd())
	rootCmd.AddCommand(cli.ReplyCmd())
	rootCmd.AddCommand(cli.InboxCmd())
	rootCmd.AddCommand(cli.ShowCmd())
	rootCmd.AddCommand(cli.CloseCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.DeskCmd())
	rootCmd.AddCommand(cli.MissionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
