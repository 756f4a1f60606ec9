// Package command defines the command capability and the name registry the
// dispatch loop resolves input against.
package command

import (
	"log/slog"
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrUnknownCommand is returned by Execute when no command is registered
// under the requested name. The dispatcher reports it to the user; it is
// never fatal.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a unit of executable behavior invoked by name. Execution
// errors propagate to the dispatcher, which contains them.
type Command interface {
	Execute() error
}

// Func adapts a plain function to the Command interface.
type Func func() error

// Execute implements Command.
func (f Func) Execute() error {
	return f()
}

// Registry maps command names to command instances. Names are unique;
// re-registration overwrites silently. The registry is populated once at
// startup and read for the process lifetime.
type Registry struct {
	commands map[string]Command
	logger   *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		commands: make(map[string]Command),
		logger:   logger,
	}
}

// Register stores cmd under name, overwriting any previous registration.
func (r *Registry) Register(name string, cmd Command) {
	if _, exists := r.commands[name]; exists {
		r.logger.Debug("overwriting registered command", "name", name)
	}
	r.commands[name] = cmd
	r.logger.Info("registered command", "name", name)
}

// Get returns the command registered under name.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}

// Execute looks up name and invokes the command. An unregistered name
// yields ErrUnknownCommand; errors from the command itself pass through
// unwrapped for the caller to contain.
func (r *Registry) Execute(name string) error {
	cmd, ok := r.commands[name]
	if !ok {
		return errors.Wrapf(ErrUnknownCommand, "%q", name)
	}
	r.logger.Debug("executing command", "name", name)
	return cmd.Execute()
}
