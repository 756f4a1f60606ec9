package plugins

import (
	"fmt"
	"io"

	"thoreinstein.com/tally/pkg/command"
)

// MenuCommand lists every registered command. It is the one built-in that
// needs the registry itself.
type MenuCommand struct {
	registry *command.Registry
	out      io.Writer
}

// NewMenuCommand builds the menu command over reg.
func NewMenuCommand(reg *command.Registry, out io.Writer) *MenuCommand {
	return &MenuCommand{registry: reg, out: out}
}

// Execute prints the available command names, sorted.
func (c *MenuCommand) Execute() error {
	fmt.Fprintln(c.out, "Available Commands:")
	for _, name := range c.registry.Names() {
		fmt.Fprintf(c.out, "-%s\n", name)
	}
	return nil
}
