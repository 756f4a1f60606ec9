package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Scanner scans a directory for plugins
type Scanner struct {
	Path string
}

// NewScanner creates a scanner over the configured plugin directory.
func NewScanner(path string) *Scanner {
	return &Scanner{Path: path}
}

// findExecutable returns the first executable file in a directory, or "".
func findExecutable(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		// Strictly Unix execute bits
		if info.Mode()&0111 != 0 {
			return filepath.Join(dir, entry.Name())
		}
	}
	return ""
}

// Scan finds plugins in the scanner's path. Each plugin is a subdirectory
// carrying a manifest.yaml and an executable. A failure in one candidate is
// recorded on its Plugin and never aborts the scan.
func (s *Scanner) Scan() (*Result, error) {
	start := time.Now()
	var plugins []*Plugin
	scanned := 0

	// A missing plugin directory just means no plugins.
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return &Result{Duration: time.Since(start)}, nil
	}

	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		fullPath := filepath.Join(s.Path, entry.Name())
		manifestPath := filepath.Join(fullPath, "manifest.yaml")
		if _, err := os.Stat(manifestPath); err != nil {
			continue
		}

		scanned++
		plugin := &Plugin{
			Dir:         entry.Name(),
			Name:        entry.Name(),
			Status:      StatusCompatible,
			DiscoveryAt: time.Now(),
		}

		exe := findExecutable(fullPath)
		if exe == "" {
			plugin.Status = StatusError
			plugin.Error = fmt.Errorf("no executable found in %s", fullPath)
			plugins = append(plugins, plugin)
			continue
		}
		plugin.Path = exe

		manifest, err := loadManifest(manifestPath)
		if err != nil {
			plugin.Status = StatusError
			plugin.Error = fmt.Errorf("failed to load manifest: %w", err)
		} else {
			if manifest.Name != "" {
				plugin.Name = manifest.Name
			}
			plugin.Version = manifest.Version
			plugin.Description = manifest.Description
			plugin.Manifest = manifest
		}
		plugins = append(plugins, plugin)
	}

	return &Result{
		Plugins:  plugins,
		Scanned:  scanned,
		Duration: time.Since(start),
	}, nil
}
