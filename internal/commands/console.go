package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/console"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&ConsoleCmd{})
}

// ConsoleCmd runs the interactive menu.
type ConsoleCmd struct {
	in io.Reader
}

// SetInput sets the menu input (for testing). Defaults to stdin.
func (c *ConsoleCmd) SetInput(in io.Reader) {
	c.in = in
}

func (c *ConsoleCmd) Name() string      { return "console" }
func (c *ConsoleCmd) Aliases() []string { return []string{"menu"} }
func (c *ConsoleCmd) Synopsis() string  { return "Interactive menu" }
func (c *ConsoleCmd) Usage() string     { return "todo console" }
func (c *ConsoleCmd) NeedsStore() bool  { return true }

func (c *ConsoleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConsoleCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		in = os.Stdin
	}

	state, err := app.Load(ctx, st)
	if err != nil {
		return storageFailure(cfg, errOut, err)
	}

	err = console.New(state, in, out, cfg.DefaultStatus).Run(ctx)
	switch {
	case errors.Is(err, console.ErrInput):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case err != nil:
		return storageFailure(cfg, errOut, err)
	}
	return exitcode.Success
}
