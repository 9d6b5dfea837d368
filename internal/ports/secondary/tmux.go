package secondary

// TmuxAdapter defines the secondary port for tmux integration. Only the
// desk-mode status surface uses it; the core itself stays pull-based.
type TmuxAdapter interface {
	// InsideSession reports whether the process runs inside a tmux session.
	InsideSession() bool

	// SetWindowTitle renames the current tmux window. A no-op outside tmux.
	SetWindowTitle(title string) error

	// ServerRunning reports whether a tmux server is reachable.
	ServerRunning() bool
}
