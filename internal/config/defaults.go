package config

import (
	"fmt"
	"strings"
)

// Default values applied when the configuration leaves a field empty.
const (
	DefaultSidebarFile = "sidebars.yaml"
	DefaultSidebarName = "docs"
	DefaultMetricsPath = "/metrics"
	DefaultDebounce    = "500ms"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SidebarsDefaultApplier handles sidebar source defaults.
type SidebarsDefaultApplier struct{}

func (SidebarsDefaultApplier) Domain() string { return "sidebars" }

func (SidebarsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Sidebars.File == "" {
		cfg.Sidebars.File = DefaultSidebarFile
	}
	if cfg.Sidebars.DefaultName == "" {
		cfg.Sidebars.DefaultName = DefaultSidebarName
	}
	if cfg.Sidebars.DefaultCollapsed == nil {
		v := true
		cfg.Sidebars.DefaultCollapsed = &v
	}
	if cfg.Sidebars.NormalizeLabels == nil {
		v := true
		cfg.Sidebars.NormalizeLabels = &v
	}
	return nil
}

// LoggingDefaultApplier handles logging defaults.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	return nil
}

// RuntimeDefaultApplier handles metrics and watch defaults.
type RuntimeDefaultApplier struct{}

func (RuntimeDefaultApplier) Domain() string { return "runtime" }

func (RuntimeDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		cfg.Metrics.Path = "/" + cfg.Metrics.Path
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultDebounce
	}
	return nil
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		SidebarsDefaultApplier{},
		LoggingDefaultApplier{},
		RuntimeDefaultApplier{},
	}
}

// applyDefaults applies default values to configuration
func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("%s defaults: %w", a.Domain(), err)
		}
	}
	return nil
}

// normalizeConfig case-folds enumerations and returns human-readable
// warnings for values that were changed.
func normalizeConfig(cfg *Config) []string {
	var warnings []string
	if raw := string(cfg.Logging.Level); raw != "" {
		if lvl := NormalizeLogLevel(raw); string(lvl) != raw {
			warnings = append(warnings, fmt.Sprintf("normalized logging.level from '%s' to '%s'", raw, lvl))
			cfg.Logging.Level = lvl
		}
	}
	if raw := string(cfg.Logging.Format); raw != "" {
		if f := NormalizeLogFormat(raw); string(f) != raw {
			warnings = append(warnings, fmt.Sprintf("normalized logging.format from '%s' to '%s'", raw, f))
			cfg.Logging.Format = f
		}
	}
	if raw := string(cfg.Sidebars.Format); raw != "" {
		// Unknown formats are left alone for validation to reject.
		if f := NormalizeSpecFormat(raw); f != "" && string(f) != raw {
			warnings = append(warnings, fmt.Sprintf("normalized sidebars.format from '%s' to '%s'", raw, f))
			cfg.Sidebars.Format = f
		}
	}
	return warnings
}
