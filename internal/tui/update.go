package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ecogoals/ecogoals/internal/api"
	"github.com/ecogoals/ecogoals/internal/constants"
	"github.com/ecogoals/ecogoals/internal/models"
	"github.com/ecogoals/ecogoals/internal/tui/components/board"
	"github.com/ecogoals/ecogoals/internal/tui/components/habitlist"
)

type habitsLoadedMsg struct {
	habits []models.Habit
	err    error
}

type habitSavedMsg struct {
	habit models.Habit
	err   error
}

type habitDeletedMsg struct {
	err error
}

type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type taskSavedMsg struct {
	err error
}

type progressLoadedMsg struct {
	progress models.Progress
	err      error
}

type motivationLoadedMsg struct {
	text string
	err  error
}

const requestTimeout = 15 * time.Second

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func (m Model) loadHabits() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		habits, err := tr.Refresh(ctx)
		return habitsLoadedMsg{habits: habits, err: err}
	}
}

func (m Model) loadTasks() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		tasks, err := tr.Tasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) loadProgress() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		progress, err := tr.Progress(ctx)
		return progressLoadedMsg{progress: progress, err: err}
	}
}

func (m Model) loadMotivation() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		text, err := tr.Motivation(ctx)
		return motivationLoadedMsg{text: text, err: err}
	}
}

func (m Model) toggleHabit(id string) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		habit, err := tr.ToggleToday(ctx, id)
		return habitSavedMsg{habit: habit, err: err}
	}
}

func (m Model) createHabit(form HabitFormModel) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		habit, err := tr.CreateHabit(ctx, api.CreateHabitRequest{
			Name:        form.Name,
			Description: form.Description,
			Color:       form.Color,
		})
		return habitSavedMsg{habit: habit, err: err}
	}
}

func (m Model) deleteHabit(id string) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return habitDeletedMsg{err: tr.DeleteHabit(ctx, id)}
	}
}

func (m Model) createTask(form TaskFormModel) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		_, err := tr.CreateTask(ctx, api.CreateTaskRequest{
			Title:       form.Title,
			Description: form.Description,
			Status:      constants.TaskStatusTodo,
		})
		return taskSavedMsg{err: err}
	}
}

func (m Model) moveTask(id string, status constants.TaskStatus) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		_, err := tr.MoveTask(ctx, id, status)
		return taskSavedMsg{err: err}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return taskSavedMsg{err: tr.DeleteTask(ctx, id)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		frameW, frameH := docStyle.GetFrameSize()
		contentH := msg.Height - frameH - 4
		m.habitList.SetSize(msg.Width-frameW, contentH)
		m.board.SetSize(msg.Width-frameW, contentH)
		return m, nil

	case habitsLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.errMsg = ""
			m.status = ""
			m.habitList.SetHabits(msg.habits, m.tracker.Today())
		}
		return m, nil

	case habitSavedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		return m, tea.Batch(m.loadHabits(), m.loadProgress())

	case habitDeletedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		return m, tea.Batch(m.loadHabits(), m.loadProgress())

	case tasksLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.errMsg = ""
			m.board.SetTasks(msg.tasks)
		}
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		return m, m.loadTasks()

	case progressLoadedMsg:
		if msg.err == nil {
			m.stats.SetProgress(msg.progress)
		}
		return m, nil

	case motivationLoadedMsg:
		if msg.err == nil {
			m.stats.SetMotivation(msg.text)
		}
		return m, nil

	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{Color: constants.DefaultHabitColor}
		m.form = newHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = StateAddHabit
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		return m, m.toggleHabit(msg.ID)

	case habitlist.DeleteHabitMsg:
		if h, ok := m.habitList.Selected(); ok && h.ID == msg.ID {
			m.habitToDeleteName = h.Name
		}
		m.habitToDeleteID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDeleteHabit
		return m, nil

	case board.AddTaskMsg:
		m.taskForm = &TaskFormModel{}
		m.form = newTaskForm(m.taskForm)
		m.previousState = m.state
		m.state = StateAddTask
		return m, m.form.Init()

	case board.MoveTaskMsg:
		return m, m.moveTask(msg.ID, msg.Status)

	case board.DeleteTaskMsg:
		if t, ok := m.board.Selected(); ok && t.ID == msg.ID {
			m.taskToDeleteName = t.Title
		}
		m.taskToDeleteID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDeleteTask
		return m, nil
	}

	// Form states swallow everything except escape.
	if m.state == StateAddHabit || m.state == StateAddTask {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = m.previousState
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if m.state == StateAddHabit {
				cmds = append(cmds, m.createHabit(*m.habitForm))
			} else {
				cmds = append(cmds, m.createTask(*m.taskForm))
			}
			m.state = m.previousState
		case huh.StateAborted:
			m.state = m.previousState
		}
		return m, tea.Batch(cmds...)
	}

	if m.state == StateConfirmDeleteHabit || m.state == StateConfirmDeleteTask {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				confirmed := m.state == StateConfirmDeleteHabit
				m.state = m.previousState
				if confirmed {
					return m, m.deleteHabit(m.habitToDeleteID)
				}
				return m, m.deleteTask(m.taskToDeleteID)
			case "n", "N", "esc":
				m.state = m.previousState
				return m, nil
			}
		}
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = nextTab(m.state)
			return m, m.tabEnterCmd()
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = prevTab(m.state)
			return m, m.tabEnterCmd()
		case key.Matches(msg, m.keys.Refresh):
			m.status = "Refreshing..."
			return m, tea.Batch(m.loadHabits(), m.loadTasks(), m.loadProgress())
		}
	}

	switch m.state {
	case StateHabits:
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		cmds = append(cmds, cmd)
	case StateTasks:
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		cmds = append(cmds, cmd)
	case StateProgress:
		var cmd tea.Cmd
		m.stats, cmd = m.stats.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tabEnterCmd fetches fresh data for the tab being entered.
func (m Model) tabEnterCmd() tea.Cmd {
	switch m.state {
	case StateProgress:
		return tea.Batch(m.loadProgress(), m.loadMotivation())
	case StateTasks:
		return m.loadTasks()
	default:
		return nil
	}
}

func nextTab(s SessionState) SessionState {
	switch s {
	case StateHabits:
		return StateTasks
	case StateTasks:
		return StateProgress
	default:
		return StateHabits
	}
}

func prevTab(s SessionState) SessionState {
	switch s {
	case StateHabits:
		return StateProgress
	case StateProgress:
		return StateTasks
	default:
		return StateHabits
	}
}
