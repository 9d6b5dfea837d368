// Package tmux contains the tmux adapter used by desk mode to surface the
// unread count in the window title. The coordination core never touches
// tmux; this is purely a presentation convenience.
package tmux

import (
	"os"
	"os/exec"

	"github.com/GianlucaP106/gotmux/gotmux"

	"github.com/example/hive/internal/ports/secondary"
)

// Adapter implements secondary.TmuxAdapter.
type Adapter struct{}

// NewAdapter creates a new tmux adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// InsideSession reports whether this process runs inside a tmux session.
func (a *Adapter) InsideSession() bool {
	return os.Getenv("TMUX") != ""
}

// SetWindowTitle renames the current tmux window. Outside tmux it is a
// no-op so desk mode behaves identically in a bare terminal.
func (a *Adapter) SetWindowTitle(title string) error {
	if !a.InsideSession() {
		return nil
	}
	// rename-window without -t targets the window of the attached client.
	return exec.Command("tmux", "rename-window", title).Run()
}

// ServerRunning reports whether a tmux server is reachable.
func (a *Adapter) ServerRunning() bool {
	tmux, err := gotmux.DefaultTmux()
	if err != nil {
		return false
	}
	if _, err := tmux.ListSessions(); err != nil {
		return false
	}
	return true
}

// Ensure Adapter implements the interface.
var _ secondary.TmuxAdapter = (*Adapter)(nil)
