// Package create implements "nvmd group create".
package create

import (
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/project"
	"github.com/spf13/cobra"
)

// CreateOptions holds options for the group create command.
type CreateOptions struct {
	IOStreams *iostreams.IOStreams
	Service   func() (*project.Service, error)

	Name    string
	Desc    string
	Version string
	Members []string
}

// NewCmdCreate creates the group create command.
func NewCmdCreate(f *cmdutil.Factory, runF func(*CreateOptions) error) *cobra.Command {
	opts := &CreateOptions{
		IOStreams: f.IOStreams,
		Service:   f.Service,
	}

	cmd := &cobra.Command{
		Use:   "create <name> [<dir>...]",
		Short: "Create a group",
		Long: `Create a named group pinned to a node version.

Any directories given become the group's initial members: each must be a
registered project, is reassigned to follow the group, and has its
.nvmdrc marker rewritten to the group's version.`,
		Example: `  nvmd group create lts --version 20.0.0
  nvmd group create lts --version 20.0.0 --desc "long term support" ~/code/app`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			opts.Members = args[1:]

			if opts.Version == "" {
				return cmdutil.FlagErrorf("--version is required")
			}

			if runF != nil {
				return runF(opts)
			}
			return createRun(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Version, "version", "v", "", "Node version for the group (required)")
	cmd.Flags().StringVar(&opts.Desc, "desc", "", "Group description")

	return cmd
}

func createRun(opts *CreateOptions) error {
	svc, err := opts.Service()
	if err != nil {
		return err
	}

	if err := svc.CreateGroup(opts.Name, opts.Desc, opts.Version, opts.Members); err != nil {
		return err
	}

	opts.IOStreams.Printf("Created group %s at version %s with %d member(s)\n",
		opts.Name, opts.Version, len(opts.Members))
	return nil
}
