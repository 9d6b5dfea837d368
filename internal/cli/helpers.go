// Package cli contains the cobra command constructors for the hive binary.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/example/hive/internal/agent"
	"github.com/example/hive/internal/core/comms"
)

// NewContext creates the context CLI commands run under.
func NewContext() context.Context {
	return context.Background()
}

// resolveSender returns the acting participant: the --from flag when given,
// otherwise the configured identity.
func resolveSender(from string) (string, error) {
	if from != "" {
		return from, nil
	}
	return agent.Current()
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// priorityColor maps a priority to its display color.
func priorityColor(priority string) *color.Color {
	switch comms.Priority(priority) {
	case comms.PriorityCritical:
		return color.New(color.FgRed, color.Bold)
	case comms.PriorityHigh:
		return color.New(color.FgYellow)
	case comms.PriorityLow:
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgWhite)
	}
}

// conversationLabel renders the counterpart or scope of a conversation.
func conversationLabel(kind, participantA, participantB, scope, viewer string) string {
	if kind == comms.KindGroup {
		return scope
	}
	if participantA == viewer {
		return participantB
	}
	if participantB == viewer {
		return participantA
	}
	return fmt.Sprintf("%s/%s", participantA, participantB)
}
