package config

import (
	"path/filepath"
	"strings"
)

// SpecFormat identifies how the sidebar specification file is encoded.
type SpecFormat string

const (
	FormatYAML     SpecFormat = "yaml"
	FormatJSON     SpecFormat = "json"
	FormatMarkdown SpecFormat = "markdown"
)

var specFormats = map[string]SpecFormat{
	"yaml":     FormatYAML,
	"yml":      FormatYAML,
	"json":     FormatJSON,
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
}

// NormalizeSpecFormat returns the canonical format for raw, or "" when unknown.
func NormalizeSpecFormat(raw string) SpecFormat {
	return specFormats[strings.ToLower(strings.TrimSpace(raw))]
}

// FormatForPath infers a format from the file extension, defaulting to YAML.
func FormatForPath(path string) SpecFormat {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f := NormalizeSpecFormat(ext); f != "" {
		return f
	}
	return FormatYAML
}

// ResolvedFormat returns the configured format or the one inferred from the file.
func (s SidebarsConfig) ResolvedFormat() SpecFormat {
	if s.Format != "" {
		return s.Format
	}
	return FormatForPath(s.File)
}
