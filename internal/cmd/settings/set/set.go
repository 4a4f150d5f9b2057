// Package set implements "nvmd settings set".
package set

import (
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/spf13/cobra"
)

// SetOptions holds options for the settings set command.
type SetOptions struct {
	IOStreams *iostreams.IOStreams
	Settings  func() (*config.Store[*config.Settings], error)

	Mirror       string
	Directory    string
	ProxyAddress string
	ProxyOff     bool
	NoProxy      bool
	NoProxySet   bool
}

// NewCmdSet creates the settings set command.
func NewCmdSet(f *cmdutil.Factory, runF func(*SetOptions) error) *cobra.Command {
	opts := &SetOptions{
		IOStreams: f.IOStreams,
		Settings:  f.Settings,
	}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long: `Change one or more settings and persist them to settings.yaml.

The new values are validated as a whole before being written; an invalid
combination leaves both the file and the in-memory settings untouched.`,
		Example: `  nvmd settings set --mirror https://npmmirror.com/mirrors/node
  nvmd settings set --proxy http://127.0.0.1:7890
  nvmd settings set --proxy-off`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				return cmdutil.FlagErrorf("at least one setting flag is required")
			}
			if opts.ProxyAddress != "" && opts.ProxyOff {
				return cmdutil.FlagErrorf("--proxy and --proxy-off are mutually exclusive")
			}
			opts.NoProxySet = cmd.Flags().Changed("no-proxy")

			if runF != nil {
				return runF(opts)
			}
			return setRun(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Mirror, "mirror", "", "Distribution mirror base URL")
	cmd.Flags().StringVar(&opts.Directory, "directory", "", "Install directory for node versions")
	cmd.Flags().StringVar(&opts.ProxyAddress, "proxy", "", "Enable an outbound proxy at this address")
	cmd.Flags().BoolVar(&opts.ProxyOff, "proxy-off", false, "Disable the outbound proxy")
	cmd.Flags().BoolVar(&opts.NoProxy, "no-proxy", false, "Bypass all proxies, including environment ones")

	return cmd
}

func setRun(opts *SetOptions) error {
	settings, err := opts.Settings()
	if err != nil {
		return err
	}

	s := settings.Latest()
	if opts.Mirror != "" {
		s.Mirror = opts.Mirror
	}
	if opts.Directory != "" {
		s.Directory = opts.Directory
	}
	if opts.ProxyAddress != "" {
		s.Proxy = &config.ProxyConfig{Enabled: true, Address: opts.ProxyAddress}
	}
	if opts.ProxyOff && s.Proxy != nil {
		s.Proxy.Enabled = false
	}
	if opts.NoProxySet {
		s.NoProxy = opts.NoProxy
	}

	if err := s.Validate(); err != nil {
		settings.Discard()
		return err
	}

	settings.Apply()
	if err := settings.SaveFile(); err != nil {
		return err
	}

	opts.IOStreams.Printf("Settings saved to %s\n", settings.Path())
	return nil
}
