package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecogoals/ecogoals/internal/api"
	"github.com/ecogoals/ecogoals/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with streaks."`
	Show   HabitShowCmd   `cmd:"" help:"Show one habit in detail."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit's name, description, or color."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for today (or a given day)."`
	Log    HabitLogCmd    `cmd:"" help:"Show completion history (ASCII grid)."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description."`
	Color       string `help:"Hex display color." default:"${defaultColor}"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, err := ctx.Tracker.CreateHabit(context.Background(), api.CreateHabitRequest{
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", habit.Name)
	return nil
}

type HabitListCmd struct {
	Refresh bool `help:"Fetch the latest state from the server first."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	var habits []models.Habit
	var err error
	if c.Refresh {
		habits, err = ctx.Tracker.Refresh(context.Background())
	} else {
		habits, err = ctx.Tracker.Habits(context.Background())
	}
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'ecogoals habit add'.")
		return nil
	}

	today := ctx.Tracker.Today()
	for _, h := range habits {
		mark := "[ ]"
		if containsDay(h.CompletedDates, today) {
			mark = "[x]"
		}
		fmt.Printf("%s %-30s streak: %d\n", mark, h.Name, h.Streak)
	}
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(context.Background(), c.Habit)
	if err != nil {
		return err
	}

	fmt.Printf("Name:        %s\n", habit.Name)
	if habit.Description != "" {
		fmt.Printf("Description: %s\n", habit.Description)
	}
	fmt.Printf("Streak:      %d\n", habit.Streak)
	fmt.Printf("Completions: %d\n", len(habit.CompletedDates))
	if n := len(habit.CompletedDates); n > 0 {
		fmt.Printf("Last done:   %s\n", habit.CompletedDates[n-1])
	}
	return nil
}

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit name or ID."`
	Name        *string `help:"New name."`
	Description *string `help:"New description."`
	Color       *string `help:"New hex display color."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(context.Background(), c.Habit)
	if err != nil {
		return err
	}

	update := models.HabitUpdate{
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
	}
	if update.Name == nil && update.Description == nil && update.Color == nil {
		return fmt.Errorf("nothing to change, pass --name, --description, or --color")
	}

	updated, err := ctx.Tracker.EditHabit(context.Background(), habit.ID, update)
	if err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Day to toggle in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(context.Background(), c.Habit)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = ctx.Tracker.Today()
	}

	updated, err := ctx.Tracker.Toggle(context.Background(), habit.ID, day)
	if err != nil {
		return err
	}

	if containsDay(updated.CompletedDates, day) {
		fmt.Printf("Marked %q done for %s. Streak: %d\n", updated.Name, day, updated.Streak)
	} else {
		fmt.Printf("Unmarked %q for %s. Streak: %d\n", updated.Name, day, updated.Streak)
	}
	return nil
}

type HabitLogCmd struct {
	Habit string `help:"Show history for one habit only."`
	Days  int    `help:"Number of trailing days to show." default:"${historyDays}"`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	var habits []models.Habit
	if c.Habit != "" {
		h, err := ctx.ResolveHabit(context.Background(), c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	} else {
		var err error
		habits, err = ctx.Tracker.Habits(context.Background())
		if err != nil {
			return err
		}
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet.")
		return nil
	}

	fmt.Printf("Completion history (last %d days, newest right):\n\n", c.Days)
	for _, h := range habits {
		grid := ctx.Tracker.History(h, c.Days)
		var b strings.Builder
		for _, done := range grid {
			if done {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		fmt.Printf("%-30s %s  (%d)\n", h.Name, b.String(), h.Streak)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Yes   bool   `help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(context.Background(), c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirm(fmt.Sprintf("Delete habit %q and its history?", habit.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Tracker.DeleteHabit(context.Background(), habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

func containsDay(dates []string, day string) bool {
	for _, d := range dates {
		if d == day {
			return true
		}
	}
	return false
}
