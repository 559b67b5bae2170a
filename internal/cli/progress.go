package cli

import (
	"context"
	"fmt"
)

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	progress, err := ctx.Tracker.Progress(context.Background())
	if err != nil {
		return err
	}

	fmt.Println("Progress:")
	fmt.Printf("  Habits:      %d\n", progress.TotalHabits)
	fmt.Printf("  Completions: %d\n", progress.Completions)
	fmt.Printf("  Best streak: %d\n", progress.BestStreak)

	if len(progress.Habits) > 0 {
		fmt.Println()
		for _, h := range progress.Habits {
			fmt.Printf("  %-30s %d day(s), %d completion(s)\n", h.Name, h.Streak, len(h.CompletedDates))
		}
	}
	return nil
}

type MotivateCmd struct{}

func (c *MotivateCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}

	message, err := ctx.Tracker.Motivation(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(message)
	return nil
}
