package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// SettingsLoader reads and writes the user settings file. Reads go through
// viper so that NVMD_* environment variables override file values
// (e.g. NVMD_MIRROR, NVMD_PROXY_ADDRESS).
type SettingsLoader struct {
	path string
	v    *viper.Viper
}

// NewSettingsLoader creates a SettingsLoader rooted at the nvmd home.
func NewSettingsLoader() (*SettingsLoader, error) {
	home, err := NvmdHome()
	if err != nil {
		return nil, fmt.Errorf("failed to determine nvmd home: %w", err)
	}
	return NewSettingsLoaderWithPath(filepath.Join(home, SettingsFileName)), nil
}

// NewSettingsLoaderWithPath creates a SettingsLoader for an explicit file.
// Used by tests that need to control the settings location.
func NewSettingsLoaderWithPath(path string) *SettingsLoader {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("NVMD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault("mirror", defaults.Mirror)
	v.SetDefault("directory", defaults.Directory)
	v.SetDefault("no_proxy", false)

	return &SettingsLoader{path: path, v: v}
}

// Path returns the full path to the settings file.
func (l *SettingsLoader) Path() string {
	return l.path
}

// Exists checks if the settings file exists.
func (l *SettingsLoader) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

// Load reads the settings file, applying defaults and environment
// overrides. A missing file yields default settings, not an error.
func (l *SettingsLoader) Load() (*Settings, error) {
	if l.Exists() {
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse settings file: %w", err)
		}
	}

	settings := &Settings{}
	if err := l.v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

// Save writes settings to the file with an atomic locked write.
func (l *SettingsLoader) Save(s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return withFileLock(l.path, func() error {
		return atomicWriteFile(l.path, data, 0o644)
	})
}

// Watch registers onChange for external edits to the settings file (the GUI
// shell owns the same file). Returns an error when the file does not exist
// yet, since there is nothing to watch.
func (l *SettingsLoader) Watch(onChange func(fsnotify.Event)) error {
	if !l.Exists() {
		return errors.New("watch settings requires an existing settings file")
	}
	if onChange != nil {
		l.v.OnConfigChange(onChange)
	}
	l.v.WatchConfig()
	return nil
}

// encodeSettingsYAML is the Store encoder for the settings domain.
func encodeSettingsYAML(s *Settings) ([]byte, error) {
	return yaml.Marshal(s)
}
