package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ecogoals/ecogoals/internal/constants"
	"github.com/ecogoals/ecogoals/internal/tracker"
	"github.com/ecogoals/ecogoals/internal/tui/components/board"
	"github.com/ecogoals/ecogoals/internal/tui/components/habitlist"
	"github.com/ecogoals/ecogoals/internal/tui/components/stats"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateTasks
	StateProgress
	StateAddHabit
	StateAddTask
	StateConfirmDeleteHabit
	StateConfirmDeleteTask
)

type HabitFormModel struct {
	Name        string
	Description string
	Color       string
}

type TaskFormModel struct {
	Title       string
	Description string
}

type Model struct {
	tracker       *tracker.Tracker
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	habitList habitlist.Model
	board     board.Model
	stats     stats.Model

	form      *huh.Form
	habitForm *HabitFormModel
	taskForm  *TaskFormModel

	habitToDeleteID   string
	habitToDeleteName string
	taskToDeleteID    string
	taskToDeleteName  string

	status   string
	errMsg   string
	quitting bool
	width    int
	height   int
}

func NewModel(tr *tracker.Tracker) Model {
	return Model{
		tracker:   tr,
		state:     StateHabits,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		habitList: habitlist.New(nil, tr.Today(), 0, 0),
		board:     board.New(nil, 0, 0),
		stats:     stats.New(tr.History, constants.HistoryDays),
		status:    "Loading...",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadHabits(), m.loadTasks(), m.loadProgress())
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Toggle, m.keys.Delete)
	case StateTasks:
		keys = append(keys, m.keys.Add, m.keys.Move, m.keys.Delete)
	case StateProgress:
		keys = append(keys, m.keys.Refresh)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Toggle, m.keys.Delete}
	case StateTasks:
		actions = []key.Binding{m.keys.Add, m.keys.Move, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func newHabitForm(f *HabitFormModel) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&f.Name).
			Validate(requireValue("name")),
		huh.NewInput().
			Title("Description").
			Value(&f.Description),
		huh.NewInput().
			Title("Color (hex)").
			Value(&f.Color),
	))
}

func newTaskForm(f *TaskFormModel) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&f.Title).
			Validate(requireValue("title")),
		huh.NewInput().
			Title("Description").
			Value(&f.Description),
	))
}

func requireValue(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errEmpty(field)
		}
		return nil
	}
}

type errEmpty string

func (e errEmpty) Error() string { return string(e) + " cannot be empty" }
