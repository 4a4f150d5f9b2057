// Package cmdutil provides shared dependencies and error types for nvmd
// commands.
package cmdutil

import (
	"github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/node"
	"github.com/schmitthub/nvmd/internal/project"
)

// Factory provides shared dependencies for CLI commands. It is a dependency
// injection container: the struct defines the contract, while
// internal/cmd/factory wires the real implementations. Closure fields use
// lazy initialization internally; commands extract only the fields they
// need into per-command Options structs.
type Factory struct {
	// Version info (set at build time via ldflags)
	Version string
	Commit  string

	// IO streams for input/output (for testability)
	IOStreams *iostreams.IOStreams

	// Config is the process-wide configuration owner (three domains).
	Config func() (*config.Config, error)

	// Settings is the settings domain store.
	Settings func() (*config.Store[*config.Settings], error)

	// Service runs project/group transactions.
	Service func() (*project.Service, error)

	// Catalog fetches the node version list.
	Catalog func() (*node.Catalog, error)
}
