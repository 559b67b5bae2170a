// Package tui is the interactive terminal frontend: a tabbed view over
// habits, the task board, and progress stats, driven by the tracker.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ecogoals/ecogoals/internal/tracker"
)

func Run(tr *tracker.Tracker) error {
	p := tea.NewProgram(NewModel(tr), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
