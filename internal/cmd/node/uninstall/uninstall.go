// Package uninstall implements "nvmd node uninstall".
package uninstall

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/node"
	"github.com/spf13/cobra"
)

// UninstallOptions holds options for the node uninstall command.
type UninstallOptions struct {
	IOStreams *iostreams.IOStreams
	Settings  func() (*config.Store[*config.Settings], error)

	Version string
}

// NewCmdUninstall creates the node uninstall command.
func NewCmdUninstall(f *cmdutil.Factory, runF func(*UninstallOptions) error) *cobra.Command {
	opts := &UninstallOptions{
		IOStreams: f.IOStreams,
		Settings:  f.Settings,
	}

	cmd := &cobra.Command{
		Use:   "uninstall <version>",
		Short: "Remove an installed node version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Version = strings.TrimPrefix(args[0], "v")

			if runF != nil {
				return runF(opts)
			}
			return uninstallRun(opts)
		},
	}

	return cmd
}

func uninstallRun(opts *UninstallOptions) error {
	settings, err := opts.Settings()
	if err != nil {
		return err
	}
	dir := settings.Latest().Directory

	if !node.IsInstalled(dir, opts.Version) {
		return fmt.Errorf("version %s is not installed", opts.Version)
	}

	target := filepath.Join(dir, "v"+opts.Version)
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("removing %s: %w", target, err)
	}

	opts.IOStreams.Printf("Uninstalled node v%s\n", opts.Version)
	return nil
}
