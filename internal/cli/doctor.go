package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/hive/internal/agent"
	"github.com/example/hive/internal/config"
	"github.com/example/hive/internal/db"
	"github.com/example/hive/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // only shown when not passing
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the hive environment",
		Long: `Health check for the hive environment.

Validates:
- Config directory and file
- Agent identity resolution
- Database reachability and schema
- Tmux availability (desk mode only; everything else works without it)

Examples:
  hive doctor           # full health check
  hive doctor --quiet   # exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkConfig(),
				checkIdentity(),
				checkDatabase(),
				checkTmux(),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
				}
			}

			if !quiet {
				fmt.Println()
				for _, r := range results {
					fmt.Printf("%-12s %s\n", r.Name, r.Status)
				}
				fmt.Println()
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						fmt.Printf("%s: %s\n", r.Name, r.Details)
					}
				}
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress output, report via exit code")

	return cmd
}

func checkConfig() CheckResult {
	dir, err := config.Dir()
	if err != nil {
		return CheckResult{Name: "config", Status: "✗", Details: err.Error()}
	}
	if _, err := os.Stat(dir); err != nil {
		return CheckResult{Name: "config", Status: "⚠", Details: fmt.Sprintf("%s missing (run `hive init`)", dir)}
	}
	if _, err := config.Load(); err != nil {
		return CheckResult{Name: "config", Status: "✗", Details: err.Error()}
	}
	return CheckResult{Name: "config", Status: "✓"}
}

func checkIdentity() CheckResult {
	name, err := agent.Current()
	if err != nil {
		return CheckResult{Name: "identity", Status: "✗", Details: err.Error()}
	}
	return CheckResult{Name: "identity", Status: "✓", Details: name}
}

func checkDatabase() CheckResult {
	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "database", Status: "✗", Details: err.Error()}
	}
	if err := database.Ping(); err != nil {
		return CheckResult{Name: "database", Status: "✗", Details: err.Error()}
	}
	var count int
	err = database.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='conversations'",
	).Scan(&count)
	if err != nil || count == 0 {
		return CheckResult{Name: "database", Status: "⚠", Details: "schema missing (run `hive init`)"}
	}
	return CheckResult{Name: "database", Status: "✓"}
}

func checkTmux() CheckResult {
	if !wire.TmuxAdapter().ServerRunning() {
		return CheckResult{Name: "tmux", Status: "⚠", Details: "no tmux server (desk mode titles disabled)"}
	}
	return CheckResult{Name: "tmux", Status: "✓"}
}
