// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags. Pointers
// distinguish unset flags from zero-value flags.
type Flags struct {
	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	TabWidth       *int
	FrameBudget    *int
	HistoryLimit   *int
	EnableTags     *string
	DisableTags    *string
	SystemClip     *bool
	CompletionData *string
}

// DefineFlags sets up the command-line flags.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = flag.Bool("version", false, "Show version information and exit")
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.TabWidth = flag.Int("tabwidth", 0, "Number of columns per tab stop - Overrides config file")
	f.FrameBudget = flag.Int("budget", 0, "Per-tick operation budget in milliseconds - Overrides config file")
	f.HistoryLimit = flag.Int("history", 0, "Maximum undo milestones retained - Overrides config file")
	f.EnableTags = flag.String("log-tags", "", "Comma-separated list of debug tags to enable")
	f.DisableTags = flag.String("log-disable-tags", "", "Comma-separated list of debug tags to disable")
	f.SystemClip = flag.Bool("system-clipboard", false, "Use system clipboard instead of internal clipboard")
	f.CompletionData = flag.String("devices", "", "Path to device completion tables (TOML) - Overrides config file")
}

// ParseFlags parses the defined command-line flags. It returns the
// remaining non-flag arguments (e.g., the script path).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags that
// were actually set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil {
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "tabwidth":
			if f.TabWidth != nil && *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "budget":
			if f.FrameBudget != nil && *f.FrameBudget > 0 {
				cfg.Editor.FrameBudgetMS = *f.FrameBudget
			}
		case "history":
			if f.HistoryLimit != nil && *f.HistoryLimit > 0 {
				cfg.Editor.MaxHistoryMilestones = *f.HistoryLimit
			}
		case "log-tags":
			if f.EnableTags != nil && *f.EnableTags != "" {
				cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
			}
		case "log-disable-tags":
			if f.DisableTags != nil && *f.DisableTags != "" {
				cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
			}
		case "system-clipboard":
			if f.SystemClip != nil {
				cfg.Editor.SystemClipboard = *f.SystemClip
			}
		case "devices":
			if f.CompletionData != nil && *f.CompletionData != "" {
				cfg.Editor.CompletionDataPath = *f.CompletionData
			}
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
