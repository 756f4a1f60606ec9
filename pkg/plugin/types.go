// Package plugin discovers and runs external command plugins.
//
// A plugin is a subdirectory of the configured plugin directory containing
// a manifest.yaml and an executable. Compatible plugins are registered in
// the command registry under the directory name and invoked as one-shot
// subprocesses inheriting the terminal. One broken plugin never prevents
// the others from loading.
package plugin

import "time"

// Status represents the compatibility status of a plugin
type Status string

const (
	StatusCompatible   Status = "Compatible"
	StatusIncompatible Status = "Incompatible"
	StatusError        Status = "Error"
)

// Manifest represents the metadata for a plugin found in manifest.yaml
type Manifest struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	Description  string `yaml:"description"`
	Author       string `yaml:"author"`
	Requirements struct {
		Tally string `yaml:"tally"` // SemVer requirement for Tally
	} `yaml:"requirements"`
}

// Plugin represents a discovered plugin.
type Plugin struct {
	// Dir is the plugin's directory name, which is also its registration
	// key in the command registry.
	Dir         string
	Name        string // Display name; falls back to Dir without a manifest name
	Version     string
	Path        string // Executable path
	Status      Status
	Description string
	Manifest    *Manifest
	Error       error
	DiscoveryAt time.Time
}

// Result contains the outcome of a discovery scan, including found plugins and metadata.
type Result struct {
	// Plugins is the list of discovered plugins.
	Plugins []*Plugin
	// Scanned is the total number of items scanned.
	Scanned int
	// Duration is the time taken to complete the scan.
	Duration time.Duration
}
