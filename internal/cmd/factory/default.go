// Package factory wires the real implementations behind cmdutil.Factory.
package factory

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/schmitthub/nvmd/internal/cmdutil"
	"github.com/schmitthub/nvmd/internal/config"
	"github.com/schmitthub/nvmd/internal/iostreams"
	"github.com/schmitthub/nvmd/internal/node"
	"github.com/schmitthub/nvmd/internal/project"
)

// New creates a fully-wired Factory with lazy-initialized dependency
// closures. Called exactly once at the CLI entry point.
// Tests should NOT import this package — construct &cmdutil.Factory{}
// directly with isolated state.
func New(version, commit string) *cmdutil.Factory {
	ios := iostreams.NewIOStreams()

	// Respect CI environment (disable prompts)
	if os.Getenv("CI") != "" {
		ios.SetNeverPrompt(true)
	}

	f := &cmdutil.Factory{
		Version:   version,
		Commit:    commit,
		IOStreams: ios,
	}

	// --- Lazy dependency closures ---

	var (
		cfgOnce sync.Once
		cfg     *config.Config
		cfgErr  error
	)
	f.Config = func() (*config.Config, error) {
		cfgOnce.Do(func() {
			cfg, cfgErr = config.New()
		})
		return cfg, cfgErr
	}

	f.Settings = func() (*config.Store[*config.Settings], error) {
		c, err := f.Config()
		if err != nil {
			return nil, err
		}
		return c.Settings()
	}

	var (
		serviceOnce sync.Once
		service     *project.Service
		serviceErr  error
	)
	f.Service = func() (*project.Service, error) {
		serviceOnce.Do(func() {
			c, err := f.Config()
			if err != nil {
				serviceErr = err
				return
			}
			service = project.NewService(c)
		})
		return service, serviceErr
	}

	var (
		catalogOnce sync.Once
		catalog     *node.Catalog
		catalogErr  error
	)
	f.Catalog = func() (*node.Catalog, error) {
		catalogOnce.Do(func() {
			settings, err := f.Settings()
			if err != nil {
				catalogErr = err
				return
			}
			c, err := f.Config()
			if err != nil {
				catalogErr = err
				return
			}
			catalog = &node.Catalog{
				Mirror:    settings.Latest().Mirror,
				CachePath: filepath.Join(c.Home(), node.CacheFileName),
			}
		})
		return catalog, catalogErr
	}

	return f
}
