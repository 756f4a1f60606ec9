package plugin

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ValidateCompatibility checks if the plugin is compatible with the current version of Tally
func ValidateCompatibility(p *Plugin, tallyVersion string) error {
	if p.Manifest == nil {
		return nil
	}

	if p.Manifest.Requirements.Tally == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(p.Manifest.Requirements.Tally)
	if err != nil {
		p.Status = StatusError
		p.Error = fmt.Errorf("invalid tally version constraint: %w", err)
		return p.Error
	}

	// Handle 'dev' version by assuming compatibility
	if tallyVersion == "dev" || tallyVersion == "" {
		return nil
	}

	v, err := semver.NewVersion(tallyVersion)
	if err != nil {
		p.Status = StatusError
		p.Error = fmt.Errorf("invalid tally version %q: %w", tallyVersion, err)
		return p.Error
	}

	if !constraint.Check(v) {
		p.Status = StatusIncompatible
		p.Error = fmt.Errorf("plugin requires tally %s, but running %s", p.Manifest.Requirements.Tally, tallyVersion)
		return p.Error
	}

	return nil
}
