// Package list implements "nvmd project list".
package list

import (
	"fmt"
	"text/tabwriter"

	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/project"
	"github.com/spf13/cobra"
)

// ListOptions holds options for the project list command.
type ListOptions struct {
	IOStreams *iostreams.IOStreams
	Service   func() (*project.Service, error)

	Fetch bool
}

// NewCmdList creates the project list command.
func NewCmdList(f *cmdutil.Factory, runF func(*ListOptions) error) *cobra.Command {
	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Service:   f.Service,
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		Example: `  # List projects from the in-memory registry
  nvmd project list

  # Re-read projects.json from disk first
  nvmd project list --fetch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(opts)
			}
			return listRun(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Fetch, "fetch", false, "Re-read the registry document from disk")

	return cmd
}

func listRun(opts *ListOptions) error {
	svc, err := opts.Service()
	if err != nil {
		return err
	}

	projects, err := svc.List(opts.Fetch)
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		opts.IOStreams.Errf("No projects registered. Run 'nvmd project add <dir>' first.\n")
		return nil
	}

	w := tabwriter.NewWriter(opts.IOStreams.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tPATH")
	for _, p := range projects {
		version := p.Version.String()
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, version, p.Path)
	}
	return w.Flush()
}
