// Package sync implements "nvmd project sync".
package sync

import (
	"fmt"
	"text/tabwriter"

	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/nvmdrc"
	"github.com/schmitthub/nvmd/internal/project"
	"github.com/spf13/cobra"
)

// SyncOptions holds options for the project sync command.
type SyncOptions struct {
	IOStreams *iostreams.IOStreams
	Service   func() (*project.Service, error)
}

// NewCmdSync creates the project sync command.
func NewCmdSync(f *cmdutil.Factory, runF func(*SyncOptions) error) *cobra.Command {
	opts := &SyncOptions{
		IOStreams: f.IOStreams,
		Service:   f.Service,
	}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Rewrite every project's marker file",
		Long: `Re-mirror each registered project's effective version onto its
.nvmdrc marker file. Projects following a group get the group's current
version; projects without an assignment are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(opts)
			}
			return syncRun(opts)
		},
	}

	return cmd
}

func syncRun(opts *SyncOptions) error {
	svc, err := opts.Service()
	if err != nil {
		return err
	}

	results, err := svc.SyncAll()
	if err != nil {
		return err
	}

	if len(results) == 0 {
		opts.IOStreams.Errf("No projects with a version assignment.\n")
		return nil
	}

	w := tabwriter.NewWriter(opts.IOStreams.Out, 0, 4, 2, ' ', 0)
	for _, r := range results {
		state := "synced"
		if r.Status == nvmdrc.StatusGone {
			state = "directory gone"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Project.Name, r.Version, state)
	}
	return w.Flush()
}
