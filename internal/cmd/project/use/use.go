// Package use implements "nvmd project use".
package use

import (
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/nvmdrc"
	"github.com/schmitthub/nvmd/internal/project"
	"github.com/spf13/cobra"
)

// UseOptions holds options for the project use command.
type UseOptions struct {
	IOStreams *iostreams.IOStreams
	Service   func() (*project.Service, error)

	Name    string
	Version string
	Group   string
}

// NewCmdUse creates the project use command.
func NewCmdUse(f *cmdutil.Factory, runF func(*UseOptions) error) *cobra.Command {
	opts := &UseOptions{
		IOStreams: f.IOStreams,
		Service:   f.Service,
	}

	cmd := &cobra.Command{
		Use:   "use <name> [<version>]",
		Short: "Assign a version or group to a project",
		Long: `Assign a node version to a registered project.

The assignment is either an explicit version string or, with --group, a
reference to a named group whose version the project follows. Either way
the project's .nvmdrc marker file is rewritten to the effective version.`,
		Example: `  # Pin a project to an explicit version
  nvmd project use app 20.0.0

  # Have the project follow a group
  nvmd project use app --group lts`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			if len(args) == 2 {
				opts.Version = args[1]
			}

			if opts.Group == "" && opts.Version == "" {
				return cmdutil.FlagErrorf("a version argument or --group is required")
			}
			if opts.Group != "" && opts.Version != "" {
				return cmdutil.FlagErrorf("a version argument and --group are mutually exclusive")
			}

			if runF != nil {
				return runF(opts)
			}
			return useRun(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Assign the project to a named group")

	return cmd
}

func useRun(opts *UseOptions) error {
	svc, err := opts.Service()
	if err != nil {
		return err
	}

	var status nvmdrc.Status
	if opts.Group != "" {
		status, err = svc.ChangeWithGroup(opts.Name, opts.Group)
	} else {
		status, err = svc.ChangeWithVersion(opts.Name, opts.Version)
	}
	if err != nil {
		return err
	}

	if opts.Group != "" {
		opts.IOStreams.Printf("Project %s now follows group %s\n", opts.Name, opts.Group)
	} else {
		opts.IOStreams.Printf("Project %s now uses %s\n", opts.Name, opts.Version)
	}

	if status == nvmdrc.StatusGone {
		opts.IOStreams.Errf("Warning: project directory no longer exists; marker file not written.\n")
	}
	return nil
}
