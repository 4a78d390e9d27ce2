package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the docnav configuration file.
type Config struct {
	Sidebars SidebarsConfig `yaml:"sidebars"`
	Export   ExportConfig   `yaml:"export,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Metrics  MetricsConfig  `yaml:"metrics,omitempty"`
	Watch    WatchConfig    `yaml:"watch,omitempty"`
}

// SidebarsConfig locates the sidebar specification and sets build policy.
type SidebarsConfig struct {
	File             string     `yaml:"file"`
	Format           SpecFormat `yaml:"format,omitempty"`            // yaml|json|markdown; inferred from extension when empty
	DefaultName      string     `yaml:"default_name,omitempty"`      // sidebar name for outlines without a heading
	DefaultCollapsed *bool      `yaml:"default_collapsed,omitempty"` // collapse state of categories that omit it
	NormalizeLabels  *bool      `yaml:"normalize_labels,omitempty"`  // compare sibling labels in Unicode NFC
}

// ExportConfig lists renderer handoff targets. Empty paths are skipped.
type ExportConfig struct {
	HugoMenu     string `yaml:"hugo_menu,omitempty"`
	HugoMenuName string `yaml:"hugo_menu_name,omitempty"` // overrides the sidebar name used as Hugo menu key
	JSON         string `yaml:"json,omitempty"`
	Outline      string `yaml:"outline,omitempty"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint of the watch command.
type MetricsConfig struct {
	Listen string `yaml:"listen,omitempty"`
	Path   string `yaml:"path,omitempty"`
}

// WatchConfig tunes file watching.
type WatchConfig struct {
	Debounce string      `yaml:"debounce,omitempty"` // Go duration, e.g. "500ms"
	Retry    RetryConfig `yaml:"retry,omitempty"`
}

// RetryConfig controls how watch mode retries a rebuild whose specification
// could not be loaded, e.g. while an editor is still writing it.
type RetryConfig struct {
	Backoff    string `yaml:"backoff,omitempty"` // fixed|linear|exponential
	Initial    string `yaml:"initial,omitempty"`
	Max        string `yaml:"max,omitempty"`
	MaxRetries *int   `yaml:"max_retries,omitempty"`
}

// Load loads a configuration file, applying defaults and validation.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes configuration content. Environment variables are expanded
// before unmarshalling.
func Parse(data []byte) (*Config, error) {
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Normalization pass (case-fold enumerations) before defaults
	for _, w := range normalizeConfig(&config) {
		fmt.Fprintf(os.Stderr, "config normalization: %s\n", w)
	}

	if err := applyDefaults(&config); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with defaults applied for the given
// sidebar file. Used when no configuration file exists.
func Default(sidebarFile string) *Config {
	cfg := &Config{Sidebars: SidebarsConfig{File: sidebarFile}}
	_ = applyDefaults(cfg)
	return cfg
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	collapsed := true
	normalize := true
	exampleConfig := Config{
		Sidebars: SidebarsConfig{
			File:             "sidebars.yaml",
			Format:           FormatYAML,
			DefaultName:      "docs",
			DefaultCollapsed: &collapsed,
			NormalizeLabels:  &normalize,
		},
		Export: ExportConfig{
			HugoMenu: "site/config/_default/menus.yaml",
			JSON:     "site/sidebars.json",
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
		Metrics: MetricsConfig{
			Listen: "${DOCNAV_METRICS_LISTEN}",
			Path:   "/metrics",
		},
		Watch: WatchConfig{
			Debounce: "500ms",
			Retry:    RetryConfig{Backoff: "linear", Initial: "100ms", Max: "2s"},
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
