// Package nvmd hosts the CLI entry point.
package nvmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/schmitthub/nvmd/internal/cmd/factory"
	"github.com/schmitthub/nvmd/internal/cmd/root"
	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/logger"
)

// Build-time variables injected via ldflags.
var (
	Version = "dev"
	Commit  = "none"
)

// Main is the entry point for the nvmd CLI. It initializes the Factory,
// creates the root command, and executes it.
func Main() int {
	defer logger.CloseFileWriter()

	f := factory.New(Version, Commit)

	rootCmd := root.NewCmdRoot(f)

	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		if errors.Is(err, cmdutil.SilentError) {
			return 1
		}
		var flagErr *cmdutil.FlagError
		if errors.As(err, &flagErr) {
			fmt.Fprintln(os.Stderr, cmd.UsageString())
			return 2
		}
		return 1
	}

	return 0
}
