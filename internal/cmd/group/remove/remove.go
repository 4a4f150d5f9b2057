// Package remove implements "nvmd group remove".
package remove

import (
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/project"
	"github.com/spf13/cobra"
)

// RemoveOptions holds options for the group remove command.
type RemoveOptions struct {
	IOStreams *iostreams.IOStreams
	Service   func() (*project.Service, error)

	Name string
}

// NewCmdRemove creates the group remove command.
func NewCmdRemove(f *cmdutil.Factory, runF func(*RemoveOptions) error) *cobra.Command {
	opts := &RemoveOptions{
		IOStreams: f.IOStreams,
		Service:   f.Service,
	}

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a group",
		Long: `Delete the named group. The group must have no member projects;
reassign them with 'nvmd project use' first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]

			if runF != nil {
				return runF(opts)
			}
			return removeRun(opts)
		},
	}

	return cmd
}

func removeRun(opts *RemoveOptions) error {
	svc, err := opts.Service()
	if err != nil {
		return err
	}

	if err := svc.RemoveGroup(opts.Name); err != nil {
		return err
	}

	opts.IOStreams.Printf("Removed group %s\n", opts.Name)
	return nil
}
