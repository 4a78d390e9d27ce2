// Package export hands a built sidebar to site renderers.
//
// Two targets are supported: a Hugo menu configuration fragment and the
// Docusaurus sidebars JSON shape. Document identifiers are passed through
// untouched; the renderer resolves them to pages and URLs.
package export

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
	"gopkg.in/yaml.v3"
)

// WeightStep spaces menu weights so entries can be inserted by hand later.
const WeightStep = 10

// MenuEntry is one Hugo menu item.
type MenuEntry struct {
	Identifier string         `yaml:"identifier"`
	Name       string         `yaml:"name,omitempty"`
	PageRef    string         `yaml:"pageRef,omitempty"`
	Parent     string         `yaml:"parent,omitempty"`
	Weight     int            `yaml:"weight"`
	Params     map[string]any `yaml:"params,omitempty"`
}

// HugoMenuOptions tunes HugoMenu.
type HugoMenuOptions struct {
	// MenuName overrides the menu key for every section. Empty keeps the
	// sidebar name.
	MenuName string
}

// HugoMenuConfig mirrors the top-level "menu" key of a Hugo config file.
type HugoMenuConfig struct {
	Menu map[string][]MenuEntry `yaml:"menu"`
}

// HugoMenu flattens s into Hugo menu entries. Categories become parent
// entries carrying params.collapsed; documents use pageRef so Hugo resolves
// them. Identifiers are derived from the label path and are unique within a
// menu.
func HugoMenu(s *sidebar.Sidebar, opts HugoMenuOptions) HugoMenuConfig {
	cfg := HugoMenuConfig{Menu: map[string][]MenuEntry{}}
	for _, sec := range s.Sections {
		name := sec.Name
		if opts.MenuName != "" {
			name = opts.MenuName
		}
		m := &menuBuilder{ids: sets.New[string]()}
		for _, e := range cfg.Menu[name] {
			m.ids.Insert(e.Identifier)
		}
		m.entries = cfg.Menu[name]
		m.items(sec.Items, "", nil)
		cfg.Menu[name] = m.entries
	}
	return cfg
}

type menuBuilder struct {
	ids     sets.Set[string]
	entries []MenuEntry
}

func (m *menuBuilder) items(items []sidebar.Node, parent string, path []string) {
	for i, n := range items {
		weight := (i + 1) * WeightStep
		switch n := n.(type) {
		case *sidebar.Category:
			labels := append(path[:len(path):len(path)], n.Label)
			id := m.identifier(strings.Join(labels, "/"))
			m.entries = append(m.entries, MenuEntry{
				Identifier: id,
				Name:       n.Label,
				Parent:     parent,
				Weight:     weight,
				Params:     map[string]any{"collapsed": n.Collapsed},
			})
			m.items(n.Items, id, labels)
		case sidebar.DocRef:
			base := n.ID
			if len(path) > 0 {
				base = strings.Join(path, "/") + "/" + n.ID
			}
			m.entries = append(m.entries, MenuEntry{
				Identifier: m.identifier(base),
				PageRef:    n.ID,
				Parent:     parent,
				Weight:     weight,
			})
		}
	}
}

func (m *menuBuilder) identifier(base string) string {
	id := base
	for i := 2; !m.ids.Insert(id); i++ {
		id = fmt.Sprintf("%s#%d", base, i)
	}
	return id
}

// WriteHugoMenu encodes the Hugo menu for s as YAML.
func WriteHugoMenu(w io.Writer, s *sidebar.Sidebar, opts HugoMenuOptions) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(HugoMenu(s, opts)); err != nil {
		return fmt.Errorf("encode hugo menu: %w", err)
	}
	return enc.Close()
}
