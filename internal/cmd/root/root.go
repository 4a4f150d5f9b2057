// Package root assembles the nvmd root command.
package root

import (
	groupcmd "github.com/schmitthub/nvmd/internal/cmd/group"
	nodecmd "github.com/schmitthub/nvmd/internal/cmd/node"
	projectcmd "github.com/schmitthub/nvmd/internal/cmd/project"
	settingscmd "github.com/schmitthub/nvmd/internal/cmd/settings"
	"github.com/schmitthub/nvmd/internal/cmdutil"
	internalconfig "github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/logger"
	"github.com/spf13/cobra"
)

// NewCmdRoot creates the root command for the nvmd CLI.
func NewCmdRoot(f *cmdutil.Factory) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "nvmd",
		Short: "Manage per-project node versions",
		Long: `nvmd manages node.js runtime versions across local projects,
grouped by shared version policies.

Quick start:
  nvmd node install 20.0.0      # Download and install a node version
  nvmd project add ~/code/app   # Register a project directory
  nvmd project use app 20.0.0   # Pin the project to a version (.nvmdrc)
  nvmd group create lts --version 20.0.0
  nvmd project use app --group lts`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initializeLogger(f, debug)

			logger.Debug().
				Str("version", f.Version).
				Bool("debug", debug).
				Msg("nvmd starting")

			return nil
		},
		Version: f.Version,
	}

	cmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "Enable debug logging")

	cmd.AddCommand(projectcmd.NewCmdProject(f))
	cmd.AddCommand(groupcmd.NewCmdGroup(f))
	cmd.AddCommand(nodecmd.NewCmdNode(f))
	cmd.AddCommand(settingscmd.NewCmdSettings(f))

	return cmd
}

// initializeLogger sets up the logger with file logging if possible.
// Falls back to console-only logging on any error.
func initializeLogger(f *cmdutil.Factory, debug bool) {
	settings, err := f.Settings()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to load settings")
		return
	}

	logsDir, err := internalconfig.LogsDir()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to get logs directory")
		return
	}

	logging := settings.Latest().Logging
	logCfg := &logger.LoggingConfig{
		FileEnabled: logging.FileEnabled,
		MaxSizeMB:   logging.MaxSizeMB,
		MaxAgeDays:  logging.MaxAgeDays,
		MaxBackups:  logging.MaxBackups,
	}

	if err := logger.InitWithFile(debug, logsDir, logCfg); err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to initialize file writer")
	}
}
