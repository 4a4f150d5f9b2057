// Package group provides the group management command and its subcommands.
package group

import (
	"github.com/schmitthub/nvmd/internal/cmd/group/create"
	"github.com/schmitthub/nvmd/internal/cmd/group/list"
	"github.com/schmitthub/nvmd/internal/cmd/group/remove"
	"github.com/schmitthub/nvmd/internal/cmd/group/use"
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/spf13/cobra"
)

// NewCmdGroup creates the group management command.
func NewCmdGroup(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage project groups",
		Long: `Manage named groups of projects that share a node version.

Changing a group's version re-syncs the marker file of every member
project in one pass.`,
		Example: `  # Create a group and claim two projects as members
  nvmd group create lts --version 20.0.0 ~/code/app ~/code/lib

  # Move every member to a new version
  nvmd group use lts 22.0.0`,
	}

	cmd.AddCommand(list.NewCmdList(f, nil))
	cmd.AddCommand(create.NewCmdCreate(f, nil))
	cmd.AddCommand(remove.NewCmdRemove(f, nil))
	cmd.AddCommand(use.NewCmdUse(f, nil))

	return cmd
}
