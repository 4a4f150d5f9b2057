// Package use implements "nvmd group use".
package use

import (
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/project"
	"github.com/spf13/cobra"
)

// UseOptions holds options for the group use command.
type UseOptions struct {
	IOStreams *iostreams.IOStreams
	Service   func() (*project.Service, error)

	Name    string
	Version string
}

// NewCmdUse creates the group use command.
func NewCmdUse(f *cmdutil.Factory, runF func(*UseOptions) error) *cobra.Command {
	opts := &UseOptions{
		IOStreams: f.IOStreams,
		Service:   f.Service,
	}

	cmd := &cobra.Command{
		Use:   "use <name> <version>",
		Short: "Change a group's version",
		Long: `Change the named group's node version and rewrite the .nvmdrc
marker file of every member project.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			opts.Version = args[1]

			if runF != nil {
				return runF(opts)
			}
			return useRun(opts)
		},
	}

	return cmd
}

func useRun(opts *UseOptions) error {
	svc, err := opts.Service()
	if err != nil {
		return err
	}

	if err := svc.ChangeGroupVersion(opts.Name, opts.Version); err != nil {
		return err
	}

	opts.IOStreams.Printf("Group %s now uses %s\n", opts.Name, opts.Version)
	return nil
}
