package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/hive/internal/ports/primary"
	"github.com/example/hive/internal/wire"
)

// MissionCmd returns the mission command
func MissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Manage the mission registry",
		Long: `Manage the mission registry: which agents are active, the role they
hold, and the task they claimed. Scope resolution for group discussions
reads this registry at call time, so starting and ending missions is what
moves agents in and out of audiences.`,
	}

	cmd.AddCommand(missionStartCmd())
	cmd.AddCommand(missionEndCmd())
	cmd.AddCommand(missionListCmd())
	cmd.AddCommand(missionClaimCmd())

	return cmd
}

func missionStartCmd() *cobra.Command {
	var role, taskID, epicID, from string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Register yourself as active",
		Long: `Register an active mission for yourself with a role.

Examples:
  hive mission start --role backend
  hive mission start --role frontend --task TASK-7 --epic EPIC-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			agentName, err := resolveSender(from)
			if err != nil {
				return err
			}

			mission, err := wire.RegistryService().StartMission(ctx, primary.StartMissionRequest{
				Agent:  agentName,
				Role:   role,
				TaskID: taskID,
				EpicID: epicID,
			})
			if err != nil {
				return fmt.Errorf("failed to start mission: %w", err)
			}

			fmt.Printf("✓ Started %s: %s as %s\n", mission.ID, mission.Agent, mission.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Role held for this mission (required)")
	cmd.Flags().StringVar(&taskID, "task", "", "Task to claim immediately")
	cmd.Flags().StringVar(&epicID, "epic", "", "Epic the claimed task belongs to")
	cmd.Flags().StringVar(&from, "from", "", "Override the agent identity")

	return cmd
}

func missionEndCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "end [mission-id]",
		Short: "End a mission",
		Long: `End a mission. Without an argument your own active mission ends.

Ending a mission removes the agent from every dynamically-scoped audience
immediately; their view history stays in the store.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			registry := wire.RegistryService()

			if len(args) == 1 {
				if err := registry.EndMission(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to end mission: %w", err)
				}
				fmt.Printf("✓ Ended %s\n", args[0])
				return nil
			}

			agentName, err := resolveSender(from)
			if err != nil {
				return err
			}
			if err := registry.EndMissionForAgent(ctx, agentName); err != nil {
				return fmt.Errorf("failed to end mission: %w", err)
			}
			fmt.Printf("✓ Ended %s's active mission\n", agentName)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Override the agent identity")

	return cmd
}

func missionListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			missions, err := wire.RegistryService().ListActive(ctx)
			if err != nil {
				return fmt.Errorf("failed to list missions: %w", err)
			}
			if len(missions) == 0 {
				fmt.Println("No active missions.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tAGENT\tROLE\tTASK\tEPIC\tSTARTED")
			for _, m := range missions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					m.ID, m.Agent, m.Role, m.TaskID, m.EpicID, m.StartedAt)
			}
			return w.Flush()
		},
	}
	return cmd
}

func missionClaimCmd() *cobra.Command {
	var epicID, from string

	cmd := &cobra.Command{
		Use:   "claim <task-id>",
		Short: "Claim the task your mission is working",
		Long: `Record the task your active mission is working. The epic linkage makes
you part of that epic's discussion audience.

Example:
  hive mission claim TASK-7 --epic EPIC-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			registry := wire.RegistryService()

			agentName, err := resolveSender(from)
			if err != nil {
				return err
			}
			missions, err := registry.ListActive(ctx)
			if err != nil {
				return fmt.Errorf("failed to list missions: %w", err)
			}
			var missionID string
			for _, m := range missions {
				if m.Agent == agentName {
					missionID = m.ID
					break
				}
			}
			if missionID == "" {
				return fmt.Errorf("no active mission for %s (run `hive mission start` first)", agentName)
			}

			if err := registry.ClaimTask(ctx, missionID, args[0], epicID); err != nil {
				return fmt.Errorf("failed to claim task: %w", err)
			}
			fmt.Printf("✓ %s claimed %s\n", missionID, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&epicID, "epic", "", "Epic the task belongs to")
	cmd.Flags().StringVar(&from, "from", "", "Override the agent identity")

	return cmd
}
