package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateTasks:
		content = docStyle.Render(m.board.View())
	case StateProgress:
		content = docStyle.Render(m.stats.View())
	case StateAddHabit, StateAddTask:
		content = docStyle.Render(m.form.View())
	case StateConfirmDeleteHabit:
		content = docStyle.Render(fmt.Sprintf("Delete habit %q and its history? (y/n)", m.habitToDeleteName))
	case StateConfirmDeleteTask:
		content = docStyle.Render(fmt.Sprintf("Delete task %q? (y/n)", m.taskToDeleteName))
	}

	var banner string
	if m.errMsg != "" {
		banner = errorStyle.Render("✗ " + m.errMsg)
	} else if m.status != "" {
		banner = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Habits", "Tasks", "Progress"}
	for i, title := range tabTitles {
		if tabFor(m.state) == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// tabFor maps overlay states back to their home tab for highlighting.
func tabFor(s SessionState) SessionState {
	switch s {
	case StateAddHabit, StateConfirmDeleteHabit:
		return StateHabits
	case StateAddTask, StateConfirmDeleteTask:
		return StateTasks
	default:
		return s
	}
}
