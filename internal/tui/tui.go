package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive board and blocks until it exits.
func Run(ctx context.Context, ws Workspace, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := NewBoard(ctx, ws, opts)
	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	).Run()
	return err
}
