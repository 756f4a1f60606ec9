package plugin

import (
	"io"
	"log/slog"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// ExternalCommand adapts a discovered plugin to the command capability. The
// plugin executable runs as a one-shot subprocess with the session's stdin
// and stdout, so it can prompt the user like a built-in command.
type ExternalCommand struct {
	plugin *Plugin
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
}

// NewExternalCommand wraps a plugin as a registrable command.
func NewExternalCommand(p *Plugin, in io.Reader, out io.Writer, logger *slog.Logger) *ExternalCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExternalCommand{plugin: p, in: in, out: out, logger: logger}
}

// Execute runs the plugin executable and waits for it to finish.
func (c *ExternalCommand) Execute() error {
	c.logger.Info("executing plugin command", "plugin", c.plugin.Dir, "path", c.plugin.Path)

	// #nosec G204
	cmd := exec.Command(c.plugin.Path)
	cmd.Stdin = c.in
	cmd.Stdout = c.out
	cmd.Stderr = c.out

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "plugin %s failed", c.plugin.Dir)
	}
	return nil
}
