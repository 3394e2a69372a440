// Package version provides the version command shared by both tools.
package version

import (
	"github.com/spf13/cobra"

	"github.com/klytics/officeskills/cmd"
)

// Version is set at build time via ldflags.
var Version = "dev"

type versionResult struct {
	Version string `json:"version"`
}

// NewCommand returns the version subcommand.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tool version",
		Args:  cmd.ExactArgs(0),
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Print(c, versionResult{Version: Version})
		},
	}
}
