// Package project provides the project management command and its
// subcommands.
package project

import (
	"github.com/schmitthub/nvmd/internal/cmd/project/add"
	"github.com/schmitthub/nvmd/internal/cmd/project/list"
	"github.com/schmitthub/nvmd/internal/cmd/project/remove"
	projectsync "github.com/schmitthub/nvmd/internal/cmd/project/sync"
	"github.com/schmitthub/nvmd/internal/cmd/project/use"
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/spf13/cobra"
)

// NewCmdProject creates the project management command.
func NewCmdProject(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage registered projects",
		Long: `Manage the project registry and per-project version assignments.

Each registered project carries an assigned version: either an explicit
version string or a reference to a named group. The assignment is mirrored
into the project's .nvmdrc marker file.`,
		Example: `  # Register project directories
  nvmd project add ~/code/app ~/code/lib

  # Pin a project to a version
  nvmd project use app 20.0.0

  # Assign a project to a group
  nvmd project use app --group lts`,
	}

	cmd.AddCommand(list.NewCmdList(f, nil))
	cmd.AddCommand(add.NewCmdAdd(f, nil))
	cmd.AddCommand(remove.NewCmdRemove(f, nil))
	cmd.AddCommand(use.NewCmdUse(f, nil))
	cmd.AddCommand(projectsync.NewCmdSync(f, nil))

	return cmd
}
