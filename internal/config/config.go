// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidecore/internal/core/fold"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/render"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // Embed logger config under [logger] table
	Editor EditorConfig  `toml:"editor"`
	Fold   FoldConfig    `toml:"fold"`
	Search SearchConfig  `toml:"search"`

	// Styles override the view's colors, e.g. [styles.selection].
	Styles map[string]render.StyleDef `toml:"styles"`

	// Plugins holds free-form settings per plugin, e.g. [plugins.autosave].
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	HistoryDepth    int  `toml:"history_depth"`
	SystemClipboard bool `toml:"system_clipboard"`
}

// FoldConfig selects how fold regions are derived.
type FoldConfig struct {
	Mode     string        `toml:"mode"` // "indent" or "bracket"
	Async    bool          `toml:"async"`
	Debounce time.Duration `toml:"debounce"`
}

// SearchConfig bounds the search engine.
type SearchConfig struct {
	HistorySize int           `toml:"history_size"`
	Timeout     time.Duration `toml:"timeout"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // Empty means default path logic in logger.Init applies
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			HistoryDepth:    DefaultHistoryDepth,
			SystemClipboard: SystemClipboard,
		},
		Fold: FoldConfig{
			Mode:     DefaultFoldMode,
			Debounce: DefaultFoldDebounce,
		},
		Search: SearchConfig{
			HistorySize: DefaultSearchHistory,
			Timeout:     DefaultSearchTimeout,
		},
	}
}

// DefaultPath returns ~/.config/tidecore/config.toml, or "" if the user
// config directory is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. Keys missing from the file keep
// their current values. A missing file is not an error.
func loadFromFile(cfg *Config, filePath string) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// The logger may not be set up yet; this only shows once it is.
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.HistoryDepth <= 0 {
		c.Editor.HistoryDepth = defaults.Editor.HistoryDepth
	}
	if _, err := fold.ParseMode(c.Fold.Mode); err != nil {
		c.Fold.Mode = defaults.Fold.Mode
	}
	if c.Fold.Debounce < 0 {
		c.Fold.Debounce = defaults.Fold.Debounce
	}
	if c.Search.HistorySize <= 0 {
		c.Search.HistorySize = defaults.Search.HistorySize
	}
	if c.Search.Timeout < 0 {
		c.Search.Timeout = defaults.Search.Timeout
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// FoldMode returns the parsed fold mode.
func (c *Config) FoldMode() fold.Mode {
	mode, _ := fold.ParseMode(c.Fold.Mode)
	return mode
}

// PluginValue returns one setting from [plugins.<plugin>].
func (c *Config) PluginValue(plugin, key string) (interface{}, bool) {
	section, ok := c.Plugins[plugin]
	if !ok {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

// Load builds a configuration from defaults, the file at path (the
// default location when empty) and any flags that were set.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		path = DefaultPath()
	}
	var err error
	if path != "" {
		err = loadFromFile(cfg, path)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig loads the process-wide configuration once. It should be
// called only from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
