package config

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// SettingsFileName is the name of the user settings file.
	SettingsFileName = "settings.yaml"

	// DefaultMirror is the upstream node distribution mirror.
	DefaultMirror = "https://nodejs.org/dist"
)

// ProxyConfig configures an outbound HTTP proxy for downloads.
type ProxyConfig struct {
	// Enabled turns proxying on; Address is ignored when false.
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	// Address is the proxy URL, e.g. "http://127.0.0.1:7890".
	Address string `yaml:"address" json:"address" mapstructure:"address"`
}

// Settings is the singleton settings domain: mirror URL, install directory,
// proxy configuration and log settings. Stored in ~/.nvmd/settings.yaml.
type Settings struct {
	// Mirror is the node distribution mirror base URL.
	Mirror string `yaml:"mirror" json:"mirror" mapstructure:"mirror"`
	// Directory is where downloaded node versions are installed.
	Directory string `yaml:"directory" json:"directory" mapstructure:"directory"`
	// Proxy is the optional outbound proxy used for downloads.
	Proxy *ProxyConfig `yaml:"proxy,omitempty" json:"proxy,omitempty" mapstructure:"proxy"`
	// NoProxy bypasses any proxy (including environment proxies) when true.
	NoProxy bool `yaml:"no_proxy" json:"no_proxy" mapstructure:"no_proxy"`

	// Logging configures file-based logging.
	Logging LoggingSettings `yaml:"logging,omitempty" json:"logging,omitempty" mapstructure:"logging"`
}

// LoggingSettings configures the rotating log file.
type LoggingSettings struct {
	// FileEnabled enables logging to file (default: true).
	FileEnabled *bool `yaml:"file_enabled,omitempty" json:"file_enabled,omitempty" mapstructure:"file_enabled"`
	// MaxSizeMB is the max size in MB before rotation (default: 20).
	MaxSizeMB int `yaml:"max_size_mb,omitempty" json:"max_size_mb,omitempty" mapstructure:"max_size_mb"`
	// MaxAgeDays is max days to retain old logs (default: 7).
	MaxAgeDays int `yaml:"max_age_days,omitempty" json:"max_age_days,omitempty" mapstructure:"max_age_days"`
	// MaxBackups is max number of old log files to keep (default: 3).
	MaxBackups int `yaml:"max_backups,omitempty" json:"max_backups,omitempty" mapstructure:"max_backups"`
}

// DefaultSettings returns settings populated with defaults. The install
// directory defaults to ~/.nvmd/versions when resolvable.
func DefaultSettings() *Settings {
	s := &Settings{
		Mirror: DefaultMirror,
	}
	if dir, err := VersionsDir(); err == nil {
		s.Directory = dir
	}
	return s
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (s *Settings) Clone() *Settings {
	out := *s
	if s.Proxy != nil {
		proxy := *s.Proxy
		out.Proxy = &proxy
	}
	if s.Logging.FileEnabled != nil {
		enabled := *s.Logging.FileEnabled
		out.Logging.FileEnabled = &enabled
	}
	return &out
}

// Validate checks the settings for internally consistent values.
func (s *Settings) Validate() error {
	if s.Mirror == "" {
		return fmt.Errorf("mirror must not be empty")
	}
	if _, err := url.Parse(s.Mirror); err != nil {
		return fmt.Errorf("invalid mirror URL %q: %w", s.Mirror, err)
	}
	if s.Directory == "" {
		return fmt.Errorf("install directory must not be empty")
	}
	if s.Proxy != nil && s.Proxy.Enabled {
		if strings.TrimSpace(s.Proxy.Address) == "" {
			return fmt.Errorf("proxy is enabled but has no address")
		}
		if _, err := url.Parse(s.Proxy.Address); err != nil {
			return fmt.Errorf("invalid proxy address %q: %w", s.Proxy.Address, err)
		}
	}
	return nil
}
