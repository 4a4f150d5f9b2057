// Package node provides the node version management command and its
// subcommands.
package node

import (
	"github.com/schmitthub/nvmd/internal/cmd/node/install"
	"github.com/schmitthub/nvmd/internal/cmd/node/list"
	"github.com/schmitthub/nvmd/internal/cmd/node/uninstall"
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/spf13/cobra"
)

// NewCmdNode creates the node version management command.
func NewCmdNode(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage installed node versions",
		Example: `  # Show available versions from the mirror
  nvmd node list

  # Download and install a version
  nvmd node install 20.0.0`,
	}

	cmd.AddCommand(list.NewCmdList(f, nil))
	cmd.AddCommand(install.NewCmdInstall(f, nil))
	cmd.AddCommand(uninstall.NewCmdUninstall(f, nil))

	return cmd
}
