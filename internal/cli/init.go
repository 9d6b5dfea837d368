package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/hive/internal/config"
	"github.com/example/hive/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var agentName string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the hive database and config",
		Long: `Initialize the shared hive database with its schema and write a default
config file. Safe to run repeatedly; existing data is untouched.

Example:
  hive init --agent backend-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if agentName != "" {
				cfg.Agent = agentName
			}

			dir, err := config.Dir()
			if err != nil {
				return err
			}
			if err := config.Save(dir, cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("✓ Config written to %s\n", dir)

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			if err := db.InitSchema(database); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			fmt.Printf("✓ Database initialized at %s\n", cfg.DBPath)

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  hive mission start --role <role>")
			fmt.Println("  hive inbox")
			return nil
		},
	}

	cmd.Flags().StringVar(&agentName, "agent", "", "Record this process's agent identity in the config")

	return cmd
}
