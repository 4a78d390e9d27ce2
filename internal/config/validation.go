package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/docnav/internal/retry"
)

// ErrConfigNotFound is returned by Load when the file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSidebars(); err != nil {
		return err
	}
	if err := cv.validateExport(); err != nil {
		return err
	}
	if err := cv.validateRuntime(); err != nil {
		return err
	}
	return nil
}

func (cv *configurationValidator) validateSidebars() error {
	s := cv.config.Sidebars
	if strings.TrimSpace(s.File) == "" {
		return errors.New("sidebars.file must be set")
	}
	if s.Format != "" && NormalizeSpecFormat(string(s.Format)) == "" {
		return fmt.Errorf("sidebars.format: unsupported value %q (want yaml, json or markdown)", s.Format)
	}
	if strings.TrimSpace(s.DefaultName) == "" {
		return errors.New("sidebars.default_name must not be blank")
	}
	return nil
}

func (cv *configurationValidator) validateExport() error {
	e := cv.config.Export
	src := filepath.Clean(cv.config.Sidebars.File)
	targets := map[string]string{
		"export.hugo_menu": e.HugoMenu,
		"export.json":      e.JSON,
		"export.outline":   e.Outline,
	}
	seen := map[string]string{}
	for _, field := range []string{"export.hugo_menu", "export.json", "export.outline"} {
		p := targets[field]
		if p == "" {
			continue
		}
		clean := filepath.Clean(p)
		if clean == src {
			return fmt.Errorf("%s: would overwrite the sidebar specification %s", field, p)
		}
		if other, ok := seen[clean]; ok {
			return fmt.Errorf("%s and %s point to the same file %s", other, field, p)
		}
		seen[clean] = field
	}
	return nil
}

func (cv *configurationValidator) validateRuntime() error {
	d, err := time.ParseDuration(cv.config.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("watch.debounce must not be negative: %s", cv.config.Watch.Debounce)
	}

	r := cv.config.Watch.Retry
	switch retry.BackoffMode(strings.ToLower(r.Backoff)) {
	case "", retry.BackoffFixed, retry.BackoffLinear, retry.BackoffExponential:
	default:
		return fmt.Errorf("watch.retry.backoff: unsupported value %q (want fixed, linear or exponential)", r.Backoff)
	}
	for field, v := range map[string]string{"watch.retry.initial": r.Initial, "watch.retry.max": r.Max} {
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return fmt.Errorf("%s: must be a positive duration, got %q", field, v)
		}
	}
	if r.MaxRetries != nil && *r.MaxRetries < 0 {
		return fmt.Errorf("watch.retry.max_retries must not be negative: %d", *r.MaxRetries)
	}
	return nil
}

// DebounceDuration returns the parsed watch debounce.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// RetryPolicy returns the retry policy for watch rebuilds. Unset fields
// keep the retry package defaults.
func (c *Config) RetryPolicy() retry.Policy {
	r := c.Watch.Retry
	initial, _ := time.ParseDuration(r.Initial)
	maxDelay, _ := time.ParseDuration(r.Max)
	maxRetries := -1
	if r.MaxRetries != nil {
		maxRetries = *r.MaxRetries
	}
	return retry.NewPolicy(retry.BackoffMode(strings.ToLower(r.Backoff)), initial, maxDelay, maxRetries)
}
