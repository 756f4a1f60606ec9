package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags. "dev" always passes plugin
// compatibility checks.
var Version = "dev"

// GetVersion returns the running tally version string.
func GetVersion() string {
	return Version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tally version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tally %s\n", GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
