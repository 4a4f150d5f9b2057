// Package remove implements "nvmd project remove".
package remove

import (
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/project"
	"github.com/spf13/cobra"
)

// RemoveOptions holds options for the project remove command.
type RemoveOptions struct {
	IOStreams *iostreams.IOStreams
	Service   func() (*project.Service, error)

	Path string
}

// NewCmdRemove creates the project remove command.
func NewCmdRemove(f *cmdutil.Factory, runF func(*RemoveOptions) error) *cobra.Command {
	opts := &RemoveOptions{
		IOStreams: f.IOStreams,
		Service:   f.Service,
	}

	cmd := &cobra.Command{
		Use:   "remove <dir>",
		Short: "Unregister a project directory",
		Long: `Unregister the project at the given directory.

The project's .nvmdrc marker file is deleted and any group membership is
dropped. The directory itself is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]

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

	if err := svc.Remove(opts.Path); err != nil {
		return err
	}

	opts.IOStreams.Printf("Removed project at %s\n", opts.Path)
	return nil
}
