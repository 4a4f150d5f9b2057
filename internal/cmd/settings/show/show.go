// Package show implements "nvmd settings show".
package show

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ShowOptions holds options for the settings show command.
type ShowOptions struct {
	IOStreams *iostreams.IOStreams
	Settings  func() (*config.Store[*config.Settings], error)

	Watch bool
}

// NewCmdShow creates the settings show command.
func NewCmdShow(f *cmdutil.Factory, runF func(*ShowOptions) error) *cobra.Command {
	opts := &ShowOptions{
		IOStreams: f.IOStreams,
		Settings:  f.Settings,
	}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Long: `Print the effective settings.

With --watch, keep running and re-print whenever the settings file is
edited externally (for example by another nvmd invocation).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(opts)
			}
			return showRun(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-print on external settings changes until interrupted")

	return cmd
}

func showRun(opts *ShowOptions) error {
	settings, err := opts.Settings()
	if err != nil {
		return err
	}

	if err := printSettings(opts.IOStreams, settings.Latest()); err != nil {
		return err
	}

	if !opts.Watch {
		return nil
	}

	loader, err := config.NewSettingsLoader()
	if err != nil {
		return err
	}

	err = loader.Watch(func(fsnotify.Event) {
		s, err := loader.Load()
		if err != nil {
			opts.IOStreams.Errf("settings reload failed: %v\n", err)
			return
		}
		opts.IOStreams.Printf("---\n")
		if err := printSettings(opts.IOStreams, s); err != nil {
			opts.IOStreams.Errf("settings reload failed: %v\n", err)
		}
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

func printSettings(ios *iostreams.IOStreams, s *config.Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	ios.Printf("%s", data)
	return nil
}
