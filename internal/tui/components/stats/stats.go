package stats

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecogoals/ecogoals/internal/models"
)

// HistoryFunc reports the trailing completion grid for a habit.
type HistoryFunc func(habit models.Habit, days int) []bool

type Model struct {
	progress   models.Progress
	motivation string
	history    HistoryFunc
	days       int

	headerStyle lipgloss.Style
	doneStyle   lipgloss.Style
	missedStyle lipgloss.Style
	quoteStyle  lipgloss.Style
}

func New(history HistoryFunc, days int) Model {
	return Model{
		history:     history,
		days:        days,
		headerStyle: lipgloss.NewStyle().Bold(true),
		doneStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		missedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		quoteStyle:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("214")),
	}
}

func (m *Model) SetProgress(p models.Progress) {
	m.progress = p
}

func (m *Model) SetMotivation(text string) {
	m.motivation = text
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerStyle.Render("Progress"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Habits:      %d\n", m.progress.TotalHabits))
	b.WriteString(fmt.Sprintf("Completions: %d\n", m.progress.Completions))
	b.WriteString(fmt.Sprintf("Best streak: %d\n", m.progress.BestStreak))

	if len(m.progress.Habits) > 0 {
		b.WriteString("\n")
		b.WriteString(m.headerStyle.Render(fmt.Sprintf("Last %d days", m.days)))
		b.WriteString("\n\n")
		for _, h := range m.progress.Habits {
			grid := m.history(h, m.days)
			var row strings.Builder
			for _, done := range grid {
				if done {
					row.WriteString(m.doneStyle.Render("█"))
				} else {
					row.WriteString(m.missedStyle.Render("·"))
				}
			}
			b.WriteString(fmt.Sprintf("%-24s %s  %d\n", truncate(h.Name, 24), row.String(), h.Streak))
		}
	}

	if m.motivation != "" {
		b.WriteString("\n")
		b.WriteString(m.quoteStyle.Render(m.motivation))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
