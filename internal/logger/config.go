// Package logger provides slog-backed leveled logging with tag filtering.
package logger

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

const tagKey = "tag"

// Config holds logger settings as they appear in the TOML config file.
type Config struct {
	// LogLevel is the minimum level to log: debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFilePath is the output log file. Empty or "-" means stderr.
	LogFilePath string `toml:"log_file"`

	// EnabledTags restricts debug-tag output to these tags when non-empty.
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops messages carrying these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`
}

// Level parses the configured level string, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var (
	tagFilterMu  sync.RWMutex
	enabledTags  map[string]struct{}
	disabledTags map[string]struct{}
)

// SetTagFilters installs the tag allow/deny lists used by DebugTagf.
func SetTagFilters(enabled, disabled []string) {
	tagFilterMu.Lock()
	defer tagFilterMu.Unlock()
	enabledTags = toSet(enabled)
	disabledTags = toSet(disabled)
}

func toSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}

// filteringHandler wraps a base slog.Handler to drop records whose tag
// attribute is filtered out by the configured lists.
type filteringHandler struct {
	base slog.Handler
}

func newFilteringHandler(base slog.Handler) *filteringHandler {
	return &filteringHandler{base: base}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	var tag string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			return false
		}
		return true
	})

	if tag != "" {
		tagFilterMu.RLock()
		_, denied := disabledTags[tag]
		allowed := true
		if enabledTags != nil {
			_, allowed = enabledTags[tag]
		}
		tagFilterMu.RUnlock()
		if denied || !allowed {
			return nil
		}
	}
	return h.base.Handle(ctx, r)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &filteringHandler{base: h.base.WithAttrs(attrs)}
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{base: h.base.WithGroup(name)}
}
