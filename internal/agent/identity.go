// Package agent resolves the participant identity of the current process.
package agent

import (
	"fmt"
	"os"

	"github.com/example/hive/internal/config"
)

// Current returns the participant identifier for this process.
// Resolution order: HIVE_AGENT environment variable, then the agent field
// in the config file. There is no guessing; an unknown identity is an
// error so messages are never attributed to the wrong sender.
func Current() (string, error) {
	if name := os.Getenv("HIVE_AGENT"); name != "" {
		return name, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Agent != "" {
		return cfg.Agent, nil
	}

	return "", fmt.Errorf("agent identity not configured (set HIVE_AGENT or `agent` in ~/.hive/config.yaml)")
}
