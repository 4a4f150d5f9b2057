// Package install implements "nvmd node install".
package install

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/logger"
	"github.com/schmitthub/nvmd/internal/node"
	"github.com/spf13/cobra"
)

// InstallOptions holds options for the node install command.
type InstallOptions struct {
	IOStreams *iostreams.IOStreams
	Settings  func() (*config.Store[*config.Settings], error)

	Version string
	Force   bool
}

// NewCmdInstall creates the node install command.
func NewCmdInstall(f *cmdutil.Factory, runF func(*InstallOptions) error) *cobra.Command {
	opts := &InstallOptions{
		IOStreams: f.IOStreams,
		Settings:  f.Settings,
	}

	cmd := &cobra.Command{
		Use:   "install <version>",
		Short: "Download and install a node version",
		Long: `Download the distribution archive for the given version from the
configured mirror and unpack it into the install directory.`,
		Example: `  nvmd node install 20.0.0
  nvmd node install v22.1.0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Version = strings.TrimPrefix(args[0], "v")

			if node.ParseSemver(opts.Version) == nil {
				return cmdutil.FlagErrorf("invalid version %q: expected MAJOR.MINOR.PATCH", args[0])
			}

			if runF != nil {
				return runF(opts)
			}
			return installRun(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Reinstall even when the version is already present")

	return cmd
}

func installRun(opts *InstallOptions) error {
	// Interrupting the download aborts the transfer; no configuration state
	// has changed at that point.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := opts.Settings()
	if err != nil {
		return err
	}
	s := settings.Latest()

	if !opts.Force && node.IsInstalled(s.Directory, opts.Version) {
		opts.IOStreams.Errf("Version %s is already installed. Use --force to reinstall.\n", opts.Version)
		return nil
	}

	fetchCfg := node.FetchConfig{
		Mirror:  s.Mirror,
		Dest:    s.Directory,
		NoProxy: s.NoProxy,
	}
	if s.Proxy != nil && s.Proxy.Enabled {
		fetchCfg.Proxy = s.Proxy.Address
	}

	opts.IOStreams.StartProgressIndicator(fmt.Sprintf("downloading node v%s", opts.Version))
	throttle := node.NewThrottle(func(ev node.ProgressEvent) {
		label := fmt.Sprintf("downloading %s: %s", ev.Source, formatBytes(ev.Transferred))
		if ev.Total > 0 {
			label = fmt.Sprintf("downloading %s: %d%%", ev.Source, ev.Transferred*100/ev.Total)
		}
		opts.IOStreams.UpdateProgressIndicator(label)
	})
	fetchCfg.OnProgress = throttle.Tick

	archive, err := node.Fetch(ctx, fetchCfg, opts.Version)
	opts.IOStreams.StopProgressIndicator()
	if err != nil {
		return err
	}

	logger.Debug().Str("archive", archive).Msg("archive downloaded")

	opts.IOStreams.StartProgressIndicator(fmt.Sprintf("extracting node v%s", opts.Version))
	target, err := node.Extract(archive, s.Directory, opts.Version)
	opts.IOStreams.StopProgressIndicator()
	if err != nil {
		return err
	}

	opts.IOStreams.Printf("Installed node v%s to %s\n", opts.Version, target)
	return nil
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
