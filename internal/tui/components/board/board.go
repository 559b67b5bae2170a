package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecogoals/ecogoals/internal/constants"
	"github.com/ecogoals/ecogoals/internal/models"
)

type AddTaskMsg struct{}

type MoveTaskMsg struct {
	ID     string
	Status constants.TaskStatus
}

type DeleteTaskMsg struct {
	ID string
}

var columns = []constants.TaskStatus{
	constants.TaskStatusTodo,
	constants.TaskStatusInProgress,
	constants.TaskStatusDone,
}

var columnTitles = map[constants.TaskStatus]string{
	constants.TaskStatusTodo:       "To Do",
	constants.TaskStatusInProgress: "In Progress",
	constants.TaskStatusDone:       "Done",
}

type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Advance key.Binding
	Back    key.Binding
	Delete  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Advance: key.NewBinding(
			key.WithKeys("m", "enter"),
			key.WithHelp("m", "move forward"),
		),
		Back: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "move back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	tasks  []models.Task
	keys   KeyMap
	column int
	cursor int
	width  int
	height int

	columnStyle   lipgloss.Style
	activeStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	selectedStyle lipgloss.Style
}

func New(tasks []models.Task, width, height int) Model {
	return Model{
		tasks:  tasks,
		keys:   DefaultKeyMap(),
		width:  width,
		height: height,
		columnStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		activeStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 1),
		titleStyle: lipgloss.NewStyle().Bold(true),
		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
	}
}

func (m *Model) SetTasks(tasks []models.Task) {
	m.tasks = tasks
	m.clampCursor()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) inColumn(status constants.TaskStatus) []models.Task {
	var out []models.Task
	for _, t := range m.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Selected returns the task under the cursor, if any.
func (m Model) Selected() (models.Task, bool) {
	col := m.inColumn(columns[m.column])
	if m.cursor < len(col) {
		return col[m.cursor], true
	}
	return models.Task{}, false
}

func (m *Model) clampCursor() {
	n := len(m.inColumn(columns[m.column]))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Left):
			if m.column > 0 {
				m.column--
				m.clampCursor()
			}
		case key.Matches(msg, m.keys.Right):
			if m.column < len(columns)-1 {
				m.column++
				m.clampCursor()
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.inColumn(columns[m.column]))-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Advance):
			if t, ok := m.Selected(); ok && m.column < len(columns)-1 {
				target := columns[m.column+1]
				return m, func() tea.Msg { return MoveTaskMsg{ID: t.ID, Status: target} }
			}
		case key.Matches(msg, m.keys.Back):
			if t, ok := m.Selected(); ok && m.column > 0 {
				target := columns[m.column-1]
				return m, func() tea.Msg { return MoveTaskMsg{ID: t.ID, Status: target} }
			}
		case key.Matches(msg, m.keys.Delete):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: t.ID} }
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.tasks) == 0 {
		return "\n  No tasks yet.\n  Press 'a' to add one."
	}

	colWidth := 28
	if m.width > 0 {
		if w := m.width/len(columns) - 4; w > 16 {
			colWidth = w
		}
	}

	rendered := make([]string, 0, len(columns))
	for ci, status := range columns {
		var b strings.Builder
		b.WriteString(m.titleStyle.Render(fmt.Sprintf("%s (%d)", columnTitles[status], len(m.inColumn(status)))))
		b.WriteString("\n\n")
		for ti, t := range m.inColumn(status) {
			title := truncate(t.Title, colWidth-2)
			if ci == m.column && ti == m.cursor {
				b.WriteString(m.selectedStyle.Render("▸ " + title))
			} else {
				b.WriteString("  " + title)
			}
			b.WriteByte('\n')
		}

		style := m.columnStyle
		if ci == m.column {
			style = m.activeStyle
		}
		rendered = append(rendered, style.Width(colWidth).Render(b.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
