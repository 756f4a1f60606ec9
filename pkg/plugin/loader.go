package plugin

import (
	"io"
	"log/slog"

	"thoreinstein.com/tally/pkg/command"
)

// Load scans for plugins and registers every compatible one in the
// registry under its directory name. Broken or incompatible plugins are
// logged and skipped; names already registered (built-ins win) are skipped
// with a warning. The scan result is returned for listing.
func Load(reg *command.Registry, scanner *Scanner, tallyVersion string, in io.Reader, out io.Writer, logger *slog.Logger) *Result {
	if logger == nil {
		logger = slog.Default()
	}

	result, err := scanner.Scan()
	if err != nil {
		logger.Error("plugin scan failed", "path", scanner.Path, "error", err)
		return &Result{}
	}

	for _, p := range result.Plugins {
		if p.Status != StatusCompatible {
			logger.Error("skipping plugin", "plugin", p.Dir, "error", p.Error)
			continue
		}

		ValidateCompatibility(p, tallyVersion)
		if p.Status != StatusCompatible {
			logger.Warn("skipping incompatible plugin", "plugin", p.Dir, "error", p.Error)
			continue
		}

		if _, exists := reg.Get(p.Dir); exists {
			logger.Warn("skipping plugin: name already registered", "plugin", p.Dir)
			continue
		}

		reg.Register(p.Dir, NewExternalCommand(p, in, out, logger))
		logger.Info("registered plugin command",
			"plugin", p.Dir, "version", p.Version, "path", p.Path)
	}

	return result
}
