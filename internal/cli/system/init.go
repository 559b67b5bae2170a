package system

import (
	"fmt"
	"os"
	"strings"

	"github.com/ecogoals/ecogoals/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing cache before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if strings.HasPrefix(path, "postgres://") || strings.HasPrefix(path, "postgresql://") {
			return fmt.Errorf("cannot --force a PostgreSQL cache, drop the schema manually")
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing cache: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing cache: %w", err)
			}
			fmt.Printf("Deleted existing cache at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing cache: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized ecogoals cache at: %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Next: 'ecogoals register' or 'ecogoals login' to connect your account.")
	return nil
}
