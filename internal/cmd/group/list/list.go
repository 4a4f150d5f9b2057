// Package list implements "nvmd group list".
package list

import (
	"fmt"
	"text/tabwriter"

	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/project"
	"github.com/spf13/cobra"
)

// ListOptions holds options for the group list command.
type ListOptions struct {
	IOStreams *iostreams.IOStreams
	Service   func() (*project.Service, error)
}

// NewCmdList creates the group list command.
func NewCmdList(f *cmdutil.Factory, runF func(*ListOptions) error) *cobra.Command {
	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Service:   f.Service,
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(opts)
			}
			return listRun(opts)
		},
	}

	return cmd
}

func listRun(opts *ListOptions) error {
	svc, err := opts.Service()
	if err != nil {
		return err
	}

	groups, err := svc.Groups()
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		opts.IOStreams.Errf("No groups. Run 'nvmd group create <name> --version <v>' first.\n")
		return nil
	}

	w := tabwriter.NewWriter(opts.IOStreams.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tMEMBERS\tDESCRIPTION")
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", g.Name, g.Version, len(g.Members), g.Desc)
	}
	return w.Flush()
}
