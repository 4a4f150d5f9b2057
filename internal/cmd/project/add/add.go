// Package add implements "nvmd project add".
package add

import (
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/project"
	"github.com/spf13/cobra"
)

// AddOptions holds options for the project add command.
type AddOptions struct {
	IOStreams *iostreams.IOStreams
	Service   func() (*project.Service, error)

	Dirs []string
}

// NewCmdAdd creates the project add command.
func NewCmdAdd(f *cmdutil.Factory, runF func(*AddOptions) error) *cobra.Command {
	opts := &AddOptions{
		IOStreams: f.IOStreams,
		Service:   f.Service,
	}

	cmd := &cobra.Command{
		Use:   "add <dir>...",
		Short: "Register project directories",
		Long: `Register one or more directories as projects.

Each directory's existing .nvmdrc marker file, if present, seeds the
project's version assignment. Already-registered directories are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dirs = args

			if runF != nil {
				return runF(opts)
			}
			return addRun(opts)
		},
	}

	return cmd
}

func addRun(opts *AddOptions) error {
	svc, err := opts.Service()
	if err != nil {
		return err
	}

	added, err := svc.Add(opts.Dirs)
	if err != nil {
		return err
	}

	if len(added) == 0 {
		opts.IOStreams.Errf("All given directories are already registered.\n")
		return nil
	}

	for _, p := range added {
		if p.Version.IsZero() {
			opts.IOStreams.Printf("Registered %s (%s)\n", p.Name, p.Path)
			continue
		}
		opts.IOStreams.Printf("Registered %s (%s) with version %s\n", p.Name, p.Path, p.Version)
	}
	return nil
}
