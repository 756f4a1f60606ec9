// Package plugins holds the built-in calculator commands and the
// registration table that installs them into the command registry at
// startup. External plugins discovered on disk are handled separately by
// pkg/plugin.
package plugins

import (
	"bufio"
	"io"
	"log/slog"

	"thoreinstein.com/tally/pkg/command"
	"thoreinstein.com/tally/pkg/history"
)

// Deps carries everything a built-in command may need. The reader is shared
// with the dispatch loop so prompting commands consume the same buffered
// stdin.
type Deps struct {
	Store  *history.Store
	In     *bufio.Reader
	Out    io.Writer
	Logger *slog.Logger
}

// A factory builds one built-in command. Factories that need registry
// introspection (the menu) receive it; the rest ignore it.
type factory func(deps Deps, reg *command.Registry) command.Command

// builtins is the explicit registration table. The key is the command name
// users type at the prompt.
var builtins = map[string]factory{
	"add": func(d Deps, _ *command.Registry) command.Command {
		return NewArithmeticCommand("add", "+", func(a, b float64) float64 { return a + b }, d)
	},
	"sub": func(d Deps, _ *command.Registry) command.Command {
		return NewArithmeticCommand("sub", "-", func(a, b float64) float64 { return a - b }, d)
	},
	"multiply": func(d Deps, _ *command.Registry) command.Command {
		return NewArithmeticCommand("multiply", "*", func(a, b float64) float64 { return a * b }, d)
	},
	"menu": func(d Deps, reg *command.Registry) command.Command {
		return NewMenuCommand(reg, d.Out)
	},
	"history": func(d Deps, _ *command.Registry) command.Command {
		return NewHistoryCommand(d)
	},
}

// RegisterBuiltins installs every built-in command into the registry.
func RegisterBuiltins(reg *command.Registry, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	for name, build := range builtins {
		reg.Register(name, build(deps, reg))
	}
	deps.Logger.Info("built-in commands registered", "count", len(builtins))
}
