// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
}

// EditorConfig holds engine-level editing settings.
type EditorConfig struct {
	// TabWidth is the column width of one tab stop.
	TabWidth int `toml:"tab_width"`
	// ExpandTabs replaces tabs with spaces on ingestion when true;
	// otherwise tabs are preserved.
	ExpandTabs bool `toml:"expand_tabs"`
	// FrameBudgetMS bounds how long one executor tick may spend
	// advancing queued operations.
	FrameBudgetMS int `toml:"frame_budget_ms"`
	// MaxHistoryMilestones bounds the undo history length, counted in
	// milestone boundaries.
	MaxHistoryMilestones int `toml:"max_history_milestones"`
	// WordDelimiters are the characters treated as word boundaries by
	// entire-word caret movement and double-click selection.
	WordDelimiters string `toml:"word_delimiters"`
	// SystemClipboard routes Copy/Cut/Paste through the OS clipboard.
	SystemClipboard bool `toml:"system_clipboard"`
	// CompletionDataPath points at a TOML file with device categories,
	// hashes and logic-type tables. Empty means built-in defaults.
	CompletionDataPath string `toml:"completion_data"`
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
			LogFilePath: "",
		},
		Editor: EditorConfig{
			TabWidth:             DefaultTabWidth,
			ExpandTabs:           true,
			FrameBudgetMS:        DefaultFrameBudgetMS,
			MaxHistoryMilestones: DefaultMaxHistoryMilestones,
			WordDelimiters:       DefaultWordDelimiters,
			SystemClipboard:      SystemClipboard,
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file. A
// missing file is not an error; defaults apply.
func loadFromFile(filePath string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.FrameBudgetMS <= 0 {
		c.Editor.FrameBudgetMS = defaults.Editor.FrameBudgetMS
	}
	if c.Editor.MaxHistoryMilestones <= 0 {
		c.Editor.MaxHistoryMilestones = defaults.Editor.MaxHistoryMilestones
	}
	if c.Editor.WordDelimiters == "" {
		c.Editor.WordDelimiters = defaults.Editor.WordDelimiters
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and
// validation. It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, AppName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				if fileCfg.Logger.LogLevel != "" {
					cfg.Logger = fileCfg.Logger
				}
				if fileCfg.Editor.TabWidth > 0 {
					cfg.Editor.TabWidth = fileCfg.Editor.TabWidth
				}
				if fileCfg.Editor.FrameBudgetMS > 0 {
					cfg.Editor.FrameBudgetMS = fileCfg.Editor.FrameBudgetMS
				}
				if fileCfg.Editor.MaxHistoryMilestones > 0 {
					cfg.Editor.MaxHistoryMilestones = fileCfg.Editor.MaxHistoryMilestones
				}
				if fileCfg.Editor.WordDelimiters != "" {
					cfg.Editor.WordDelimiters = fileCfg.Editor.WordDelimiters
				}
				if fileCfg.Editor.CompletionDataPath != "" {
					cfg.Editor.CompletionDataPath = fileCfg.Editor.CompletionDataPath
				}
				cfg.Editor.ExpandTabs = fileCfg.Editor.ExpandTabs
				cfg.Editor.SystemClipboard = fileCfg.Editor.SystemClipboard
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if
// LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
