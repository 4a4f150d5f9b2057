// Package settings provides the settings command and its subcommands.
package settings

import (
	"github.com/schmitthub/nvmd/internal/cmd/settings/set"
	"github.com/schmitthub/nvmd/internal/cmd/settings/show"
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/spf13/cobra"
)

// NewCmdSettings creates the settings command.
func NewCmdSettings(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change nvmd settings",
		Long: `Show and change nvmd settings: the distribution mirror, install
directory, and proxy configuration.

Settings live in ~/.nvmd/settings.yaml and can be overridden per-invocation
with NVMD_* environment variables (NVMD_MIRROR, NVMD_DIRECTORY, ...).`,
	}

	cmd.AddCommand(show.NewCmdShow(f, nil))
	cmd.AddCommand(set.NewCmdSet(f, nil))

	return cmd
}
