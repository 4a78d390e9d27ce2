// Package specload reads sidebar specifications from YAML or JSON.
//
// Comments and disabled sections are dropped by the YAML parser, so the
// builder in internal/sidebar only ever sees active entries.
package specload

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"gopkg.in/yaml.v3"
)

// ErrEmptySpec is returned for documents with no sidebars at all.
var ErrEmptySpec = errors.New("sidebar specification is empty")

// Parse decodes a YAML (or JSON, which is valid YAML) document into a Spec.
//
// The top level must be a mapping of sidebar names to item lists. A
// document wrapped in a single "sidebars" key is unwrapped.
func Parse(data []byte) (sidebar.Spec, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySpec
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse sidebar specification: %w", err)
	}
	if raw == nil {
		return nil, ErrEmptySpec
	}

	top, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parse sidebar specification: top level must be a mapping of sidebar names, got %T", raw)
	}
	if inner, ok := top["sidebars"].(map[string]any); ok && len(top) == 1 {
		top = inner
	}
	if len(top) == 0 {
		return nil, ErrEmptySpec
	}
	return sidebar.Spec(top), nil
}

// LoadFile reads and parses the specification at path.
func LoadFile(path string) (sidebar.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sidebar specification: %w", err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}
