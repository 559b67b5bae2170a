package cli

import (
	"context"
	"fmt"

	"github.com/ecogoals/ecogoals/internal/api"
	"github.com/ecogoals/ecogoals/internal/constants"
	"github.com/ecogoals/ecogoals/internal/models"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a task to the board."`
	List   TaskListCmd   `cmd:"" help:"List the task board."`
	Move   TaskMoveCmd   `cmd:"" help:"Move a task to another column."`
	Delete TaskDeleteCmd `cmd:"" help:"Delete a task."`
}

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `help:"Optional description."`
	Status      string `help:"Board column (todo, inprogress, done)." default:"todo" enum:"todo,inprogress,done"`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	task, err := ctx.Tracker.CreateTask(context.Background(), api.CreateTaskRequest{
		Title:       c.Title,
		Description: c.Description,
		Status:      constants.TaskStatus(c.Status),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added task: %s\n", task.Title)
	return nil
}

type TaskListCmd struct{}

func (c *TaskListCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	tasks, err := ctx.Tracker.Tasks(context.Background())
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks yet. Add one with 'ecogoals task add'.")
		return nil
	}

	columns := []constants.TaskStatus{
		constants.TaskStatusTodo,
		constants.TaskStatusInProgress,
		constants.TaskStatusDone,
	}
	labels := map[constants.TaskStatus]string{
		constants.TaskStatusTodo:       "To Do",
		constants.TaskStatusInProgress: "In Progress",
		constants.TaskStatusDone:       "Done",
	}

	for _, col := range columns {
		fmt.Printf("%s:\n", labels[col])
		found := false
		for _, t := range tasks {
			if t.Status != col {
				continue
			}
			found = true
			fmt.Printf("  %s  %s\n", shortID(t.ID), t.Title)
		}
		if !found {
			fmt.Println("  (empty)")
		}
		fmt.Println()
	}
	return nil
}

type TaskMoveCmd struct {
	Task   string `arg:"" help:"Task ID (or unique prefix)."`
	Status string `arg:"" help:"Target column (todo, inprogress, done)." enum:"todo,inprogress,done"`
}

func (c *TaskMoveCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	task, err := resolveTask(ctx, c.Task)
	if err != nil {
		return err
	}

	moved, err := ctx.Tracker.MoveTask(context.Background(), task.ID, constants.TaskStatus(c.Status))
	if err != nil {
		return err
	}

	fmt.Printf("Moved %q to %s\n", moved.Title, c.Status)
	return nil
}

type TaskDeleteCmd struct {
	Task string `arg:"" help:"Task ID (or unique prefix)."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	task, err := resolveTask(ctx, c.Task)
	if err != nil {
		return err
	}

	if err := ctx.Tracker.DeleteTask(context.Background(), task.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted task: %s\n", task.Title)
	return nil
}

// resolveTask matches a task by exact ID, unique ID prefix, or exact title.
func resolveTask(ctx *Context, ref string) (models.Task, error) {
	tasks, err := ctx.Tracker.Tasks(context.Background())
	if err != nil {
		return models.Task{}, err
	}

	var prefixMatches []models.Task
	for _, t := range tasks {
		if t.ID == ref || t.Title == ref {
			return t, nil
		}
		if len(ref) >= 4 && len(t.ID) > len(ref) && t.ID[:len(ref)] == ref {
			prefixMatches = append(prefixMatches, t)
		}
	}

	switch len(prefixMatches) {
	case 1:
		return prefixMatches[0], nil
	case 0:
		return models.Task{}, fmt.Errorf("task %q not found", ref)
	default:
		return models.Task{}, fmt.Errorf("task %q is ambiguous", ref)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
