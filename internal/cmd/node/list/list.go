// Package list implements "nvmd node list".
package list

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/node"
	"github.com/spf13/cobra"
)

// listLimit caps catalog output; the full index runs to many hundreds of
// releases.
const listLimit = 30

// ListOptions holds options for the node list command.
type ListOptions struct {
	IOStreams *iostreams.IOStreams
	Settings  func() (*config.Store[*config.Settings], error)
	Catalog   func() (*node.Catalog, error)

	Fetch     bool
	Installed bool
	All       bool
}

// NewCmdList creates the node list command.
func NewCmdList(f *cmdutil.Factory, runF func(*ListOptions) error) *cobra.Command {
	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Settings:  f.Settings,
		Catalog:   f.Catalog,
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List node versions",
		Long: `List node versions from the distribution mirror's catalog.

The catalog is cached for a day; --fetch forces a refresh. With
--installed only locally installed versions are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(opts)
			}
			return listRun(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Fetch, "fetch", false, "Refresh the catalog from the mirror")
	cmd.Flags().BoolVar(&opts.Installed, "installed", false, "Show only installed versions")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Show the full catalog instead of the newest releases")

	return cmd
}

func listRun(opts *ListOptions) error {
	settings, err := opts.Settings()
	if err != nil {
		return err
	}
	dir := settings.Latest().Directory

	if opts.Installed {
		versions, err := node.InstalledList(dir)
		if err != nil {
			return err
		}
		if len(versions) == 0 {
			opts.IOStreams.Errf("No node versions installed. Run 'nvmd node install <version>' first.\n")
			return nil
		}
		for _, v := range versions {
			opts.IOStreams.Printf("%s\n", v)
		}
		return nil
	}

	catalog, err := opts.Catalog()
	if err != nil {
		return err
	}

	opts.IOStreams.StartProgressIndicator("fetching version catalog")
	releases, err := catalog.List(context.Background(), opts.Fetch)
	opts.IOStreams.StopProgressIndicator()
	if err != nil {
		return err
	}

	if !opts.All && len(releases) > listLimit {
		releases = releases[:listLimit]
	}

	installed, err := node.InstalledList(dir)
	if err != nil {
		return err
	}
	installedSet := make(map[string]bool, len(installed))
	for _, v := range installed {
		installedSet[v] = true
	}

	w := tabwriter.NewWriter(opts.IOStreams.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tDATE\tLTS\tNPM\t")
	for _, r := range releases {
		marker := ""
		if installedSet[strings.TrimPrefix(r.Version, "v")] {
			marker = "installed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Version, r.Date, r.LTS, r.NPM, marker)
	}
	return w.Flush()
}
