package system

import (
	"github.com/ecogoals/ecogoals/internal/cli"
	"github.com/ecogoals/ecogoals/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireAuth(); err != nil {
		return err
	}
	return tui.Run(ctx.Tracker)
}
